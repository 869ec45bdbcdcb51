package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/manzafir/manzafir-backend/internal/usecase/auth"
	"github.com/rs/zerolog"
)

type AuthMiddleware struct {
	authUseCase *auth.SessionAuthUseCase
	cookieName  string
	log         zerolog.Logger
}

func NewAuthMiddleware(authUseCase *auth.SessionAuthUseCase, cookieName string, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
		cookieName:  cookieName,
		log:         log,
	}
}

// RequireAuth gates protected routes. A missing or invalid session is a
// normal "no session" signal, logged at debug and answered with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c, m.cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		userID, err := m.authUseCase.ValidateToken(c.Request.Context(), token)
		if err != nil {
			m.log.Debug().Err(err).Msg("session validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// ExtractToken reads the session token from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func ExtractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
