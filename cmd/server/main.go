package main

import (
	"os"
	"os/signal"
	"syscall"

	"pustakahub/internal/adapters/http/middleware"
	"pustakahub/internal/adapters/http/routes"
	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/adapters/persistence/repositories"
	"pustakahub/internal/config"
	"pustakahub/internal/core/services"
	"pustakahub/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// @title PustakaHub API
// @version 1.0
// @description Library management API for members, books, loans and reports

// @contact.name API Support
// @contact.email support@pustakahub.local

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.AppMode)

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate")
	}
	log.Info().Msg("database migration completed")

	// Seed the librarian account
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Warn().Err(err).Msg("failed to seed librarian account")
	}

	// Daily maintenance job (08:30): overdue summary + token purge
	overdueService := services.NewOverdueService(
		repositories.NewLoanRepository(db),
		repositories.NewRefreshTokenRepository(db),
		log.With().Str("component", "overdue").Logger(),
	)
	if err := overdueService.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start overdue sweep")
	}
	defer overdueService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PustakaHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, log)

	// Graceful shutdown
	go gracefulShutdown(app, log)

	// Start server
	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
