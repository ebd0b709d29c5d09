package main

import (
	"context"
	"fmt"
	"os"

	"pencil/internal/config"
	"pencil/internal/database"
	"pencil/internal/gemini"
	"pencil/internal/handlers"
	"pencil/internal/insights"
	"pencil/internal/logger"
	"pencil/internal/router"
	"pencil/internal/services"
	"pencil/internal/validator"
)

// @title           Pencil API
// @version         1.0
// @description     Pencil is a personal finance tracker for recording expenses and income, viewing summaries, and requesting AI spending insights.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8000
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Insights stay disabled without an API key; the endpoint answers 503.
	var completer insights.Completer
	if appConfig.InsightsEnabled() {
		client, err := gemini.New(context.Background(), gemini.Config{
			APIKey:      appConfig.GeminiAPIKey,
			Model:       appConfig.GeminiModel,
			Endpoint:    appConfig.GeminiEndpoint,
			Timeout:     appConfig.GeminiTimeout,
			MaxAttempts: appConfig.GeminiMaxAttempts,
		})
		if err != nil {
			return fmt.Errorf("failed to create insights client: %w", err)
		}
		completer = client
		log.Infow("AI insights enabled", "model", appConfig.GeminiModel)
	} else {
		log.Warn("GEMINI_API_KEY not set, AI insights disabled")
	}

	// Initialize services
	db := dbManager.DB()
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	summaryService := services.NewSummaryService(db)
	insightsService := services.NewInsightsService(summaryService, completer)

	r := &router.Router{
		ExpenseHandler: handlers.NewExpenseHandler(expenseService, summaryService),
		IncomeHandler:  handlers.NewIncomeHandler(incomeService, summaryService),
		UserHandler:    handlers.NewUserHandler(summaryService, insightsService),
		AllowedOrigins: appConfig.CORSAllowedOrigins,
	}

	log.Infof("Starting Pencil server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return r.Engine().Run(":" + appConfig.Port)
}
