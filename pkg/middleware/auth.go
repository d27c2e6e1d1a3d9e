package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khushi747/greencart-logistics/pkg/auth"
	"github.com/khushi747/greencart-logistics/pkg/errors"
)

// TokenVerifier verifies bearer tokens and returns the embedded claims
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a valid bearer token and stores
// the authenticated user in the request context.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithAppError(c, errors.ErrUnauthorized("missing bearer token"))
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			AbortWithAppError(c, errors.ErrUnauthorized("invalid or expired token"))
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth attaches the authenticated user when a valid bearer token
// is present, and lets the request through anonymously otherwise.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if claims, err := verifier.Verify(token); err == nil {
				c.Set(ContextKeyUserID, claims.UserID)
				c.Set(ContextKeyUserRole, claims.Role)
			}
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
