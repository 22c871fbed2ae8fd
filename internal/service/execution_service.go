package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"papertrade/internal/domain"
)

// ExecutionService fills paper orders immediately at the current quoted
// price. An order is either fully recorded with a valid fill price or not
// recorded at all: validation happens before any I/O, and the ledger append
// happens only after a quote has been obtained.
type ExecutionService struct {
	trades domain.TradeRepository
	quotes domain.QuoteSource
	logger *zap.Logger
}

// NewExecutionService creates a new ExecutionService
func NewExecutionService(trades domain.TradeRepository, quotes domain.QuoteSource, logger *zap.Logger) *ExecutionService {
	return &ExecutionService{
		trades: trades,
		quotes: quotes,
		logger: logger,
	}
}

// Execute validates the order, fetches a fill price, and appends the trade.
//
// The caller identity is trusted as already authenticated; no balance or
// margin checks apply to paper trades. Ledger IDs are assigned by the
// database, so a caller retrying a failed request can produce duplicates —
// exactly-once submission is the caller's concern.
func (s *ExecutionService) Execute(ctx context.Context, userID uuid.UUID, symbol, side string, quantity int64) (*domain.Trade, error) {
	symbol, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateSide(side); err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	quote, err := s.quotes.LatestPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	trade := &domain.Trade{
		UserID:    userID,
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		FillPrice: quote.Price,
		Status:    domain.StatusFilled,
	}

	if err := s.trades.Append(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("paper trade filled",
		zap.Int64("trade_id", trade.ID),
		zap.String("symbol", trade.Symbol),
		zap.String("side", trade.Side),
		zap.Int64("quantity", trade.Quantity),
		zap.Float64("fill_price", trade.FillPrice),
	)

	return trade, nil
}
