package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "papertrade/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler    *AuthHandler
	MarketHandler  *MarketHandler
	TradeHandler   *TradeHandler
	PredictHandler *PredictHandler
	Tokens         *custommiddleware.TokenManager
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "papertrade-api",
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/refresh", config.AuthHandler.Refresh)
	}

	// Market data routes (protected)
	market := api.Group("/market", config.Tokens.Authenticate)
	{
		market.GET("/price", config.MarketHandler.GetPrice)
		market.GET("/features", config.MarketHandler.GetFeatures)
	}

	// Prediction route (protected)
	api.GET("/predict", config.PredictHandler.Predict, config.Tokens.Authenticate)

	// Trade routes (protected)
	trade := api.Group("/trade", config.Tokens.Authenticate)
	{
		trade.POST("", config.TradeHandler.CreateTrade)
		trade.GET("/my", config.TradeHandler.GetMyTrades)
	}

	// Portfolio routes (protected)
	portfolio := api.Group("/portfolio", config.Tokens.Authenticate)
	{
		portfolio.GET("/positions", config.TradeHandler.GetPositions)
		portfolio.GET("/pnl", config.TradeHandler.GetPnL)
	}
}
