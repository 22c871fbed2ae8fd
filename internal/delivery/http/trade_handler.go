package http

import (
	"github.com/labstack/echo/v4"

	"papertrade/internal/delivery/http/dto"
	"papertrade/internal/middleware"
	"papertrade/internal/service"
)

// TradeHandler handles order submission, trade history, and portfolio reads
type TradeHandler struct {
	execution  *service.ExecutionService
	accounting *service.AccountingService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(execution *service.ExecutionService, accounting *service.AccountingService) *TradeHandler {
	return &TradeHandler{
		execution:  execution,
		accounting: accounting,
	}
}

// CreateTrade submits a paper order filled at the current quote
// POST /api/trade
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	trade, err := h.execution.Execute(c.Request().Context(), userID, req.Symbol, req.Side, req.Quantity)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, trade)
}

// GetMyTrades returns the caller's trade history, newest first
// GET /api/trade/my
func (h *TradeHandler) GetMyTrades(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	trades, err := h.accounting.TradeHistory(c.Request().Context(), userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, trades)
}

// GetPositions returns the caller's net open positions per symbol
// GET /api/portfolio/positions
func (h *TradeHandler) GetPositions(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	positions, err := h.accounting.Positions(c.Request().Context(), userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, positions)
}

// GetPnL marks the caller's open positions to the current market price
// GET /api/portfolio/pnl
func (h *TradeHandler) GetPnL(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	entries, err := h.accounting.PnL(c.Request().Context(), userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, entries)
}
