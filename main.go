// File: salonnotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonnotify/activities"
	"salonnotify/config"
	"salonnotify/database"
	bookingRepo "salonnotify/database/repository/booking"
	clientRepo "salonnotify/database/repository/client"
	notificationlogRepo "salonnotify/database/repository/notificationlog"
	"salonnotify/handlers"
	"salonnotify/middleware"
	"salonnotify/routes"
	"salonnotify/services/templates"
	"salonnotify/services/whatsapp"
	"salonnotify/utils"
	"salonnotify/workflows"

	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// temporalHealth adapts the Temporal client to the health monitor.
type temporalHealth struct {
	client client.Client
}

func (t temporalHealth) CheckHealth(ctx context.Context) error {
	_, err := t.client.CheckHealth(ctx, &client.CheckHealthRequest{})
	return err
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	clients := clientRepo.NewMongoClientRepo()
	logs := notificationlogRepo.NewMongoNotificationLogRepo()

	// Outbound messaging.
	provider := whatsapp.NewChakraHQProvider(
		config.AppConfig.WhatsAppAPIKey,
		config.AppConfig.WhatsAppBaseURL,
		logger,
	)
	msgTemplates := templates.NewMessageTemplates(
		config.AppConfig.BusinessName,
		config.AppConfig.BusinessPhone,
		config.AppConfig.BusinessAddress,
	)

	notificationActivities := activities.NewNotificationActivities(
		bookings, clients, logs, provider, msgTemplates,
		activities.Defaults{
			CountryCode:   config.AppConfig.DefaultCountryCode,
			RecencyDays:   config.AppConfig.MarketingRecencyDays,
			SalonLocation: config.AppConfig.BusinessAddress,
		},
		logger,
	)

	// Temporal client and worker.
	temporalClient, err := client.Dial(client.Options{
		HostPort:  config.AppConfig.TemporalHostPort,
		Namespace: config.AppConfig.TemporalNamespace,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Temporal: %v", err)
	}
	defer temporalClient.Close()
	logger.Sugar().Infof("Connected to Temporal at %s", config.AppConfig.TemporalHostPort)

	w := worker.New(temporalClient, config.AppConfig.TemporalTaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize:     10,
		MaxConcurrentWorkflowTaskExecutionSize: 50,
	})
	w.RegisterWorkflow(workflows.AppointmentBookingWorkflow)
	w.RegisterWorkflow(workflows.CancellationWorkflow)
	w.RegisterWorkflow(workflows.RescheduleWorkflow)
	w.RegisterWorkflow(workflows.MarketingCampaignWorkflow)
	w.RegisterActivity(notificationActivities)

	if err := w.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start Temporal worker: %v", err)
	}
	defer w.Stop()
	logger.Sugar().Infof("Temporal worker started on task queue %s", config.AppConfig.TemporalTaskQueue)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient, temporalHealth{temporalClient})

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	workflowHandler := handlers.NewWorkflowHandler(temporalClient, bookings, logger)
	routes.RegisterRoutes(router, workflowHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
