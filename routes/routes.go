package routes

import (
	"time"

	"salonnotify/handlers"
	"salonnotify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the workflow control surface.
func RegisterRoutes(r *gin.Engine, wh *handlers.WorkflowHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	booking := r.Group("/api/workflows/booking")
	booking.Use(middleware.JWTAuthMiddleware())
	{
		booking.POST("/start", wh.StartBookingWorkflow)
		booking.POST("/cancel", wh.CancelBookingWorkflow)
		booking.POST("/reschedule", wh.RescheduleBookingWorkflow)
		booking.GET("/:bookingID/status", wh.GetWorkflowStatus)
	}

	campaigns := r.Group("/api/campaigns")
	campaigns.Use(middleware.JWTAuthMiddleware(), middleware.AdminTokenMiddleware())
	{
		campaigns.POST("/start", wh.StartMarketingCampaign)
	}
}
