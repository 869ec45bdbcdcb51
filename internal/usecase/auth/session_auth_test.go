package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/pkg/identity"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-that-is-long-enough-0000"

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session // keyed by token hash
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.TokenHash] = s
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, hash string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[hash]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[hash]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, hash)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for hash, s := range r.sessions {
		if s.IsExpired() {
			delete(r.sessions, hash)
			n++
		}
	}
	return n, nil
}

// memoryGuard mirrors the Redis SETNX guard in memory.
type memoryGuard struct {
	mu       sync.Mutex
	consumed map[string]bool
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{consumed: map[string]bool{}}
}

func (g *memoryGuard) Consume(_ context.Context, hash string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.consumed[hash] {
		return false, nil
	}
	g.consumed[hash] = true
	return true, nil
}

type fakeExchanger struct {
	userData *identity.UserData
	err      error
	calls    int
}

func (e *fakeExchanger) Exchange(_ context.Context, _ string) (*identity.UserData, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.userData, nil
}

func newTestUseCase(exchanger IdentityExchanger) (*SessionAuthUseCase, *fakeUserRepo, *fakeSessionRepo) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	uc := NewSessionAuthUseCase(
		userRepo,
		sessionRepo,
		newMemoryGuard(),
		exchanger,
		testJWTSecret,
		7*24*time.Hour,
		zerolog.Nop(),
	)
	return uc, userRepo, sessionRepo
}

func TestExchangeSession_NewUser(t *testing.T) {
	exchanger := &fakeExchanger{
		userData: &identity.UserData{ID: "ext-1", Email: "ana@example.com", Name: "Ana"},
	}
	uc, userRepo, _ := newTestUseCase(exchanger)

	result, err := uc.ExchangeSession(context.Background(), "one-time-cred")
	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	// User row was created
	stored, err := userRepo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)

	// Issued token validates back to the same user
	userID, err := uc.ValidateToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestExchangeSession_ExistingUser(t *testing.T) {
	exchanger := &fakeExchanger{
		userData: &identity.UserData{ID: "ext-1", Email: "ana@example.com", Name: "Ana"},
	}
	uc, userRepo, _ := newTestUseCase(exchanger)

	existing := &domain.User{ID: "user-1", Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, userRepo.Create(context.Background(), existing))

	result, err := uc.ExchangeSession(context.Background(), "one-time-cred")
	require.NoError(t, err)
	assert.False(t, result.IsNewUser)
	assert.Equal(t, "user-1", result.User.ID)
}

func TestExchangeSession_ConsumeOnce(t *testing.T) {
	exchanger := &fakeExchanger{
		userData: &identity.UserData{ID: "ext-1", Email: "ana@example.com", Name: "Ana"},
	}
	uc, _, _ := newTestUseCase(exchanger)

	_, err := uc.ExchangeSession(context.Background(), "one-time-cred")
	require.NoError(t, err)

	// Replaying the same credential is rejected before the provider is hit.
	_, err = uc.ExchangeSession(context.Background(), "one-time-cred")
	assert.ErrorIs(t, err, domain.ErrCredentialConsumed)
	assert.Equal(t, 1, exchanger.calls)
}

func TestExchangeSession_ProviderRejection(t *testing.T) {
	exchanger := &fakeExchanger{err: domain.ErrExchangeRejected}
	uc, _, _ := newTestUseCase(exchanger)

	_, err := uc.ExchangeSession(context.Background(), "bad-cred")
	assert.ErrorIs(t, err, domain.ErrExchangeRejected)
}

func TestExchangeSession_EmptyCredential(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeExchanger{})

	_, err := uc.ExchangeSession(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateToken_Garbage(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeExchanger{})

	_, err := uc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidateToken_SessionRevoked(t *testing.T) {
	exchanger := &fakeExchanger{
		userData: &identity.UserData{ID: "ext-1", Email: "ana@example.com", Name: "Ana"},
	}
	uc, _, _ := newTestUseCase(exchanger)

	result, err := uc.ExchangeSession(context.Background(), "one-time-cred")
	require.NoError(t, err)

	// A valid JWT whose server-side session is gone must not validate.
	require.NoError(t, uc.Logout(context.Background(), result.Token))
	_, err = uc.ValidateToken(context.Background(), result.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestPurgeExpiredSessions(t *testing.T) {
	exchanger := &fakeExchanger{
		userData: &identity.UserData{ID: "ext-1", Email: "ana@example.com", Name: "Ana"},
	}
	uc, _, sessionRepo := newTestUseCase(exchanger)

	result, err := uc.ExchangeSession(context.Background(), "one-time-cred")
	require.NoError(t, err)

	expired := &domain.Session{
		ID:        "session-expired",
		UserID:    result.User.ID,
		TokenHash: "stale-hash",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, sessionRepo.Create(context.Background(), expired))

	purged, err := uc.PurgeExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// The live session survives the sweep.
	_, err = uc.ValidateToken(context.Background(), result.Token)
	require.NoError(t, err)
	_, err = sessionRepo.GetByTokenHash(context.Background(), "stale-hash")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLogout_Idempotent(t *testing.T) {
	exchanger := &fakeExchanger{
		userData: &identity.UserData{ID: "ext-1", Email: "ana@example.com", Name: "Ana"},
	}
	uc, _, _ := newTestUseCase(exchanger)

	result, err := uc.ExchangeSession(context.Background(), "one-time-cred")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), result.Token))
	// Second logout of the same token still succeeds.
	require.NoError(t, uc.Logout(context.Background(), result.Token))
	// So does logging out a token that never had a session.
	require.NoError(t, uc.Logout(context.Background(), "never-issued"))
}
