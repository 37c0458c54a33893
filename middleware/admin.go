package middleware

import (
	"crypto/subtle"
	"net/http"

	"salonnotify/config"

	"github.com/gin-gonic/gin"
)

// AdminTokenMiddleware guards bulk operations behind a shared admin token.
// With no token configured the route is unavailable rather than open.
func AdminTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AppConfig.AdminAPIToken
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin API is not enabled"})
			return
		}

		provided := c.GetHeader("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid admin token"})
			return
		}
		c.Next()
	}
}
