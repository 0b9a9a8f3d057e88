package routes

import (
	"pustakahub/internal/adapters/http/handlers"
	"pustakahub/internal/adapters/http/middleware"
	"pustakahub/internal/adapters/persistence/repositories"
	"pustakahub/internal/config"
	"pustakahub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg, log)
	memberService := services.NewMemberService(memberRepo)
	bookService := services.NewBookService(bookRepo)
	loanService := services.NewLoanService(loanRepo, bookRepo, memberRepo, txManager, log)
	reportService := services.NewReportService(reportRepo, log)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(memberService)
	bookHandler := handlers.NewBookHandler(bookService)
	loanHandler := handlers.NewLoanHandler(loanService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Auth routes (rate limited)
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Protected routes; every resource below is librarian-only
	protected := api.Group("", middleware.AuthMiddleware(cfg), middleware.LibrarianOnly())

	members := protected.Group("/members")
	members.Post("", memberHandler.Create)
	members.Get("", memberHandler.List)
	members.Get("/:id", memberHandler.GetByID)
	members.Put("/:id", memberHandler.Update)
	members.Delete("/:id", memberHandler.Delete)

	books := protected.Group("/books")
	books.Post("", bookHandler.Create)
	books.Get("", bookHandler.List)
	books.Get("/:id", bookHandler.GetByID)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)

	loans := protected.Group("/loans")
	loans.Post("", loanHandler.Create)
	loans.Get("", loanHandler.List)
	loans.Get("/active", loanHandler.ListActive)
	loans.Get("/overdue", loanHandler.ListOverdue)
	loans.Get("/:id", loanHandler.GetByID)
	loans.Put("/:id/return", loanHandler.Return)
	loans.Delete("/:id", loanHandler.Delete)

	reports := protected.Group("/reports")
	reports.Post("", reportHandler.Create)
	reports.Get("", reportHandler.List)
	reports.Delete("/:id", reportHandler.Delete)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.Stats)
}
