package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "auth.userID"

// Middleware rejects requests without a valid bearer token and binds the
// verified user id to the request context.
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := v.UserID(BearerFromRequest(c.Request))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id set by Middleware.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}
