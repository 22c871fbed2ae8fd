package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"papertrade/internal/delivery/http/dto"
	"papertrade/internal/domain"
	"papertrade/internal/service"
)

const defaultHorizonMinutes = 30

// PredictHandler serves heuristic return predictions
type PredictHandler struct {
	quotes domain.QuoteSource
}

// NewPredictHandler creates a new PredictHandler
func NewPredictHandler(quotes domain.QuoteSource) *PredictHandler {
	return &PredictHandler{quotes: quotes}
}

// Predict derives features for a symbol and maps them to a bounded
// (return, confidence) pair
// GET /api/predict?symbol=AAPL&horizon_minutes=30
func (h *PredictHandler) Predict(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, "Query parameter 'symbol' is required")
	}

	horizon := defaultHorizonMinutes
	if raw := c.QueryParam("horizon_minutes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return BadRequestResponse(c, "horizon_minutes must be a positive integer")
		}
		horizon = n
	}

	features, err := h.quotes.RecentFeatures(c.Request().Context(), symbol)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	predictedReturn, confidence := service.Predict(*features, horizon)

	return SuccessResponse(c, dto.PredictOutput{
		Symbol:          features.Symbol,
		HorizonMinutes:  horizon,
		PredictedReturn: predictedReturn,
		Confidence:      confidence,
	})
}
