package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/repository"
	"github.com/manzafir/manzafir-backend/pkg/identity"
	"github.com/rs/zerolog"
)

// consumedCredentialTTL bounds how long a redeemed one-time credential stays
// marked. The provider's own credentials are short-lived, so ten minutes
// covers any realistic replay window.
const consumedCredentialTTL = 10 * time.Minute

// IdentityExchanger redeems a one-time credential at the external provider.
type IdentityExchanger interface {
	Exchange(ctx context.Context, sessionID string) (*identity.UserData, error)
}

// CredentialGuard enforces consume-once semantics on one-time credentials.
// Consume returns false when the credential was already redeemed.
type CredentialGuard interface {
	Consume(ctx context.Context, credentialHash string, ttl time.Duration) (bool, error)
}

type SessionAuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	guard       CredentialGuard
	provider    IdentityExchanger
	jwtSecret   string
	sessionTTL  time.Duration
	log         zerolog.Logger
}

func NewSessionAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	guard CredentialGuard,
	provider IdentityExchanger,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *SessionAuthUseCase {
	return &SessionAuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		guard:       guard,
		provider:    provider,
		jwtSecret:   jwtSecret,
		sessionTTL:  sessionTTL,
		log:         log,
	}
}

// ExchangeResult is returned on a successful credential exchange.
type ExchangeResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"session_token"`
	ExpiresAt time.Time    `json:"expires_at"`
	IsNewUser bool         `json:"is_new_user"`
}

// ExchangeSession redeems a one-time credential for a server-issued session.
// Each credential is accepted at most once: the guard is consulted before the
// provider, so even if the client's re-entrancy guard fails, the second
// attempt dies here.
func (uc *SessionAuthUseCase) ExchangeSession(ctx context.Context, credential string) (*ExchangeResult, error) {
	if credential == "" {
		return nil, domain.ErrInvalidInput
	}

	ok, err := uc.guard.Consume(ctx, uc.hashToken(credential), consumedCredentialTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to check credential: %w", err)
	}
	if !ok {
		uc.log.Warn().Msg("replayed one-time credential rejected")
		return nil, domain.ErrCredentialConsumed
	}

	userData, err := uc.provider.Exchange(ctx, credential)
	if err != nil {
		if errors.Is(err, domain.ErrExchangeRejected) {
			return nil, domain.ErrExchangeRejected
		}
		return nil, fmt.Errorf("failed to exchange credential: %w", err)
	}

	user, err := uc.userRepo.GetByEmail(ctx, userData.Email)
	isNewUser := false

	if errors.Is(err, domain.ErrUserNotFound) {
		user = &domain.User{
			ID:      uuid.NewString(),
			Email:   userData.Email,
			Name:    userData.Name,
			Picture: userData.Picture,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		isNewUser = true
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Bool("new_user", isNewUser).Msg("session issued")

	return &ExchangeResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
		IsNewUser: isNewUser,
	}, nil
}

// createSession issues a signed JWT and stores its hash
func (uc *SessionAuthUseCase) createSession(ctx context.Context, userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.sessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: uc.hashToken(tokenString),
		ExpiresAt: expiresAt,
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken verifies a session token and returns the user ID it belongs
// to. Backs both the auth middleware and the client's silent re-validation.
func (uc *SessionAuthUseCase) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrInvalidToken
	}

	// Verify session exists
	session, err := uc.sessionRepo.GetByTokenHash(ctx, uc.hashToken(tokenString))
	if err != nil {
		return "", domain.ErrSessionNotFound
	}

	if session.IsExpired() {
		return "", domain.ErrSessionExpired
	}

	return userID, nil
}

// Logout invalidates the session behind the token. Idempotent: logging out an
// already-gone session is a success.
func (uc *SessionAuthUseCase) Logout(ctx context.Context, tokenString string) error {
	err := uc.sessionRepo.DeleteByTokenHash(ctx, uc.hashToken(tokenString))
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return err
}

// PurgeExpiredSessions deletes session rows past their expiry. Expired
// sessions are already rejected by ValidateToken; this reclaims the rows.
func (uc *SessionAuthUseCase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	purged, err := uc.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	if purged > 0 {
		uc.log.Info().Int64("purged", purged).Msg("expired sessions removed")
	}
	return purged, nil
}

// hashToken creates SHA256 hash of token for storage
func (uc *SessionAuthUseCase) hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
