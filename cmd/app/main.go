package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"papertrade/configs"
	"papertrade/internal/database"
	delivery "papertrade/internal/delivery/http"
	"papertrade/internal/infra"
	"papertrade/internal/logger"
	"papertrade/internal/marketdata"
	"papertrade/internal/middleware"
	"papertrade/internal/repository"
	"papertrade/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	zapLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, zapLogger); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tradeRepo := repository.NewTradeRepository(db)

	// Initialize quote source from explicit configuration
	quotes, err := marketdata.NewQuoteSource(&cfg.Market, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize quote source", zap.Error(err))
	}

	// Initialize core services
	accounting := service.NewAccountingService(tradeRepo, quotes, zapLogger)
	execution := service.NewExecutionService(tradeRepo, quotes, zapLogger)

	// Initialize auth
	tokens := middleware.NewTokenManager(&cfg.Auth)

	// Initialize handlers
	routerConfig := &delivery.RouterConfig{
		AuthHandler:    delivery.NewAuthHandler(userRepo, tokens),
		MarketHandler:  delivery.NewMarketHandler(quotes),
		TradeHandler:   delivery.NewTradeHandler(execution, accounting),
		PredictHandler: delivery.NewPredictHandler(quotes),
		Tokens:         tokens,
	}

	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, routerConfig)

	// Start the quote provider health watch
	scheduler := infra.NewScheduler(quotes, cfg.Market.WatchSymbols, zapLogger)
	if err := scheduler.Start(); err != nil {
		zapLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("starting papertrade API",
		zap.String("addr", addr),
		zap.String("env", cfg.Server.Env),
		zap.String("market_provider", cfg.Market.Provider),
	)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
