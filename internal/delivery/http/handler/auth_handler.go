package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manzafir/manzafir-backend/internal/config"
	"github.com/manzafir/manzafir-backend/internal/delivery/http/middleware"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/usecase/auth"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authUseCase *auth.SessionAuthUseCase
	session     *config.SessionConfig
	log         zerolog.Logger
}

func NewAuthHandler(authUseCase *auth.SessionAuthUseCase, session *config.SessionConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		session:     session,
		log:         log,
	}
}

// SessionData handles POST /api/auth/session-data. The one-time credential
// arrives in the X-Session-ID header, never body or query, so it stays out
// of request logs.
func (h *AuthHandler) SessionData(c *gin.Context) {
	credential := c.GetHeader("X-Session-ID")
	if credential == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "session ID required"})
		return
	}

	result, err := h.authUseCase.ExchangeSession(c.Request.Context(), credential)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialConsumed), errors.Is(err, domain.ErrExchangeRejected):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid session"})
		default:
			h.log.Error().Err(err).Msg("session exchange failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "authentication failed"})
		}
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, result)
}

// Logout handles POST /api/auth/logout. Idempotent by design: the cookie is
// cleared and 200 returned whether or not a live session accompanied the
// request, so a client that already lost its session still ends logged out.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.ExtractToken(c, h.session.CookieName)
	if token != "" {
		if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
			// Best-effort server-side invalidation; the cookie is cleared
			// regardless.
			h.log.Warn().Err(err).Msg("server-side session invalidation failed")
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, SuccessResponse{Message: "logged out successfully"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(
		h.session.CookieName,
		token,
		int(h.session.SessionTTL().Seconds()),
		h.session.CookiePath,
		h.session.CookieDomain,
		true, // Secure: the cookie is cross-site-sendable, so it must be
		true, // HttpOnly
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.session.CookieName, "", -1, h.session.CookiePath, h.session.CookieDomain, true, true)
}
