package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"papertrade/internal/domain"
)

// AccountingService derives positions and unrealized PnL from the append-only
// trade ledger and a live quote. Nothing is cached between calls: every
// request replays the full trade history and fetches fresh quotes, so reads
// are consistent with whatever the ledger last committed.
type AccountingService struct {
	trades domain.TradeRepository
	quotes domain.QuoteSource
	logger *zap.Logger
}

// NewAccountingService creates a new AccountingService
func NewAccountingService(trades domain.TradeRepository, quotes domain.QuoteSource, logger *zap.Logger) *AccountingService {
	return &AccountingService{
		trades: trades,
		quotes: quotes,
		logger: logger,
	}
}

// Positions returns the net signed quantity per symbol for a user. BUY trades
// contribute +quantity and SELL trades -quantity; symbols that net to zero
// are closed and excluded.
func (s *AccountingService) Positions(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	trades, err := s.trades.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	positions := make(map[string]int64)
	for _, t := range trades {
		positions[t.Symbol] += signedQuantity(t)
	}

	for symbol, qty := range positions {
		if qty == 0 {
			delete(positions, symbol)
		}
	}

	return positions, nil
}

// PnL marks every open position to the current market price.
//
// The accumulators follow the symmetric convention: both BUY and SELL move
// cost in proportion to their fill price, so a SELL lowers the average entry
// rather than realizing profit against it. This is deliberately not a
// FIFO/LIFO lot model and must not be changed without migrating stored
// expectations.
//
// Quote fetches for the open symbols fan out concurrently; if any one of them
// fails the whole call fails with that error and no partial result is
// returned.
func (s *AccountingService) PnL(ctx context.Context, userID uuid.UUID) ([]domain.PnLEntry, error) {
	trades, err := s.trades.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	qty := make(map[string]int64)
	cost := make(map[string]float64)

	for _, t := range trades {
		q := signedQuantity(t)
		qty[t.Symbol] += q
		cost[t.Symbol] += float64(q) * t.FillPrice
	}

	var open []string
	for symbol, quantity := range qty {
		if quantity != 0 {
			open = append(open, symbol)
		}
	}
	sort.Strings(open)

	if len(open) == 0 {
		return []domain.PnLEntry{}, nil
	}

	var mu sync.Mutex
	prices := make(map[string]float64, len(open))

	g, gctx := errgroup.WithContext(ctx)
	for _, symbol := range open {
		symbol := symbol
		g.Go(func() error {
			quote, err := s.quotes.LatestPrice(gctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			prices[symbol] = quote.Price
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("pnl aborted: quote fetch failed", zap.Error(err))
		return nil, err
	}

	entries := make([]domain.PnLEntry, 0, len(open))
	for _, symbol := range open {
		quantity := qty[symbol]
		avgEntry := cost[symbol] / float64(quantity)
		lastPrice := prices[symbol]

		entries = append(entries, domain.PnLEntry{
			Symbol:        symbol,
			Quantity:      quantity,
			AvgEntry:      avgEntry,
			LastPrice:     lastPrice,
			UnrealizedPnL: (lastPrice - avgEntry) * float64(quantity),
		})
	}

	return entries, nil
}

// TradeHistory returns the user's trades as stored by the ledger.
func (s *AccountingService) TradeHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	return s.trades.ListByUser(ctx, userID)
}

func signedQuantity(t *domain.Trade) int64 {
	if t.Side == domain.SideSell {
		return -t.Quantity
	}
	return t.Quantity
}
