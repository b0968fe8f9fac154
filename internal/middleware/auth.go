package middleware

import (
	"errors"
	"net/http"
	"strings"

	"werkshift/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// TokenParser verifies a bearer token and returns its actor.
type TokenParser interface {
	Parse(tokenStr string) (*auth.Actor, error)
}

// JWTAuthMiddleware stores the actor id (uuid.UUID) and role (auth.Role)
// of a valid bearer token in the context, and aborts with 401 otherwise.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		actor, err := tokens.Parse(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrInvalidClaims) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, actor.ID)
		c.Set(RoleKey, actor.Role)
		c.Next()
	}
}

// RequireRole rejects actors of any other role with 403. It must run after
// JWTAuthMiddleware.
func RequireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.Get(RoleKey)
		if r, ok := got.(auth.Role); !ok || r != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This action requires the " + string(role) + " role"})
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated actor id set by JWTAuthMiddleware.
func ActorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
