package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ipocraft/ipocraft-backend/config"
	"github.com/ipocraft/ipocraft-backend/database"
	"github.com/ipocraft/ipocraft-backend/handlers"
	"github.com/ipocraft/ipocraft-backend/jobs"
	"github.com/ipocraft/ipocraft-backend/services"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	cfg.ApplyLogLevel()

	// Connect to database
	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate("database/schema.sql"); err != nil {
		log.Printf("Migration warning: %v", err)
	}

	// Initialize services
	ipoService := services.NewIPOService(database.DB)
	gmpService := services.NewGMPService(database.DB)
	brokerService := services.NewBrokerService(database.DB)
	viewCache := services.NewViewCache(cfg.GetCacheTTL(), 100)
	listingService := services.NewListingService(ipoService, gmpService, viewCache)

	// Initialize jobs
	refreshJob := jobs.NewGMPRefreshJob(ipoService, listingService, jobs.NewMockGMPSource())
	cleanupJob := jobs.NewCacheCleanupJob(viewCache)

	// Initialize handlers
	ipoHandler := handlers.NewIPOHandler(listingService)
	gmpHandler := handlers.NewGMPHandler(listingService, gmpService)
	brokerHandler := handlers.NewBrokerHandler(brokerService)
	adminHandler := handlers.NewAdminHandler(ipoService, brokerService, listingService, refreshJob)
	adminAuth := handlers.NewAdminAuth(cfg.AdminJWTSecret, cfg.AdminToken)

	// Schedule background jobs
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.GMPRefreshCron, refreshJob.Run); err != nil {
		log.Fatalf("Invalid GMP_REFRESH_CRON expression %q: %v", cfg.GMPRefreshCron, err)
	}
	if _, err := scheduler.AddFunc("@every 15m", cleanupJob.Run); err != nil {
		log.Fatalf("Failed to schedule cache cleanup: %v", err)
	}
	if _, err := scheduler.AddFunc("@hourly", func() {
		ipoService.LogMetricsSummary()
		listingService.LogMetricsSummary()
	}); err != nil {
		log.Fatalf("Failed to schedule metrics summary: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	logrus.WithFields(logrus.Fields{
		"gmp_refresh_cron": cfg.GMPRefreshCron,
		"cache_ttl":        cfg.GetCacheTTL(),
	}).Info("Background jobs scheduled")

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// Routes
	api := app.Group("/api/v1")

	// IPO Routes
	api.Get("/ipos", ipoHandler.GetIPOs)
	api.Get("/ipos/:slug", ipoHandler.GetIPOBySlug)
	api.Get("/ipos/:id/gmp-history", gmpHandler.GetHistoryByIPO)

	// GMP table route
	api.Get("/gmp", gmpHandler.GetGMPTable)

	// Broker Routes
	api.Get("/brokers", brokerHandler.GetBrokers)

	// Admin Routes
	api.Post("/admin/login", adminAuth.Login)

	admin := api.Group("/admin", adminAuth.Middleware())
	admin.Post("/ipos", adminHandler.CreateIPO)
	admin.Put("/ipos/:id", adminHandler.UpdateIPO)
	admin.Delete("/ipos/:id", adminHandler.DeleteIPO)
	admin.Get("/brokers", adminHandler.ListBrokers)
	admin.Post("/brokers", adminHandler.CreateBroker)
	admin.Put("/brokers/:id", adminHandler.UpdateBroker)
	admin.Delete("/brokers/:id", adminHandler.DeleteBroker)
	admin.Post("/gmp/refresh", adminHandler.TriggerGMPRefresh)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
