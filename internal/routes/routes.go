// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"mahfaza/internal/config"
	"mahfaza/internal/connectivity"
	"mahfaza/internal/gateway"
	"mahfaza/internal/handlers"
	"mahfaza/internal/middleware"
	"mahfaza/internal/repositories"
	"mahfaza/internal/services/auth"
	"mahfaza/internal/services/currency"
	"mahfaza/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App) {
	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB)

	// Collaborators
	policyTable := currency.NewDefaultTable()
	checker := connectivity.NewDialChecker(
		config.GetEnv("CONNECTIVITY_PROBE_ADDR", "1.1.1.1:53"),
		config.GetDurationEnv("CONNECTIVITY_PROBE_TIMEOUT", 2*time.Second),
	)
	cardGateway := gateway.NewStripeCardGateway()

	// Services
	authService := auth.NewService(userRepo, walletRepo, checker, auth.Config{})
	walletService := wallet.NewService(
		walletRepo,
		repositories.CacheService,
		policyTable,
		checker,
		cardGateway,
		wallet.NoopMetricsCollector{},
		wallet.Config{},
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService)
	healthHandler := handlers.NewHealthHandler(policyTable)
	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	// Public routes
	app.Get("/health", healthHandler.Health)
	app.Get("/api/currencies", healthHandler.Currencies)
	app.Post("/api/register", authHandler.Register)
	app.Post("/api/login", authHandler.Login)
	app.Post("/api/refresh", authHandler.Refresh)

	// Authenticated routes
	api := app.Group("/api", authMiddleware.Handler)
	api.Post("/logout", authHandler.Logout)
	api.Get("/wallet", walletHandler.GetWallet)
	api.Get("/wallet/transactions", walletHandler.GetTransactions)
	api.Post("/wallet/deposit", walletHandler.Deposit)
	api.Post("/wallet/withdraw", walletHandler.Withdraw)
	api.Post("/wallet/exchange", walletHandler.Exchange)
}
