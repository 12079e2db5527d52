package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skilllink/internal/domain/auth"
	"skilllink/internal/pkg/response"
)

// SessionReader resolves a bearer token into a live session.
type SessionReader interface {
	GetSession(ctx context.Context, token string) (*auth.Session, error)
}

// JWTAuth requires a valid, unrevoked bearer token. On success it stores
// person_id, email, role and the session itself in the gin context.
func JWTAuth(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		session, err := sessions.GetSession(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("person_id", session.PersonID)
		c.Set("email", session.Email)
		c.Set("role", string(session.Role))
		c.Set(auth.SessionKey, session)
		c.Next()
	}
}
