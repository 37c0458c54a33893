package handlers

import (
	"net/http"

	"salonnotify/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest health snapshot of external services.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"checks": status,
	})
}
