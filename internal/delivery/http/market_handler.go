package http

import (
	"github.com/labstack/echo/v4"

	"papertrade/internal/domain"
)

// MarketHandler exposes live quotes and derived features
type MarketHandler struct {
	quotes domain.QuoteSource
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(quotes domain.QuoteSource) *MarketHandler {
	return &MarketHandler{quotes: quotes}
}

// GetPrice returns the latest market price for a symbol
// GET /api/market/price?symbol=AAPL
func (h *MarketHandler) GetPrice(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "Query parameter 'symbol' is required")
	}

	quote, err := h.quotes.LatestPrice(c.Request().Context(), symbol)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, quote)
}

// GetFeatures returns the recent market features for a symbol
// GET /api/market/features?symbol=AAPL
func (h *MarketHandler) GetFeatures(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "Query parameter 'symbol' is required")
	}

	features, err := h.quotes.RecentFeatures(c.Request().Context(), symbol)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, features)
}
