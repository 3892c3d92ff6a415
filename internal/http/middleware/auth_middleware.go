package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/draftly/domain"
)

// AuthMW wraps the dependencies for the bearer-token middleware
type AuthMW struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
}

// NewAuthMW creates the auth middleware
func NewAuthMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc, sessionRepo: sessionRepo}
}

// WithJWT validates the bearer token and the backing session. Every
// failure maps to the same generic 401; the reason never reaches the
// client.
func (m *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			unauthorized(c)
			return
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		// The session store is read at verify time so revocation (logout,
		// password reset) takes effect immediately.
		if claims.SessionID != "" {
			session, err := m.sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
			if err != nil || session == nil || session.UserID != claims.UserID {
				unauthorized(c)
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		if claims.SessionID != "" {
			c.Set("session_id", claims.SessionID)
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	c.Abort()
}
