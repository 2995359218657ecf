package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/auth"
)

const userIDKey = "uid"

// authMiddleware resolves the calling user from the bearer token and stores
// the id in the request context.
func authMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			abortWith(c, apperr.ErrUnauthorized)
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		userID, err := tokens.Parse(raw)
		if err != nil {
			abortWith(c, apperr.ErrUnauthorized)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortWith(c *gin.Context, e *apperr.Error) {
	c.AbortWithStatusJSON(e.Status, gin.H{"code": e.Code, "message": e.Message})
}

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
