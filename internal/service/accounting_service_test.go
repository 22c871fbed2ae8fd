package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"papertrade/internal/domain"
)

// MockTradeRepository is a mock implementation of domain.TradeRepository.
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Append(ctx context.Context, trade *domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	args := m.Called(ctx, userID)
	var trades []*domain.Trade
	if v := args.Get(0); v != nil {
		trades = v.([]*domain.Trade)
	}
	return trades, args.Error(1)
}

// MockQuoteSource is a mock implementation of domain.QuoteSource.
type MockQuoteSource struct {
	mock.Mock
}

func (m *MockQuoteSource) LatestPrice(ctx context.Context, symbol string) (*domain.Quote, error) {
	args := m.Called(ctx, symbol)
	var quote *domain.Quote
	if v := args.Get(0); v != nil {
		quote = v.(*domain.Quote)
	}
	return quote, args.Error(1)
}

func (m *MockQuoteSource) RecentFeatures(ctx context.Context, symbol string) (*domain.MarketFeatures, error) {
	args := m.Called(ctx, symbol)
	var features *domain.MarketFeatures
	if v := args.Get(0); v != nil {
		features = v.(*domain.MarketFeatures)
	}
	return features, args.Error(1)
}

func buyTrade(userID uuid.UUID, symbol string, quantity int64, price float64) *domain.Trade {
	return &domain.Trade{UserID: userID, Symbol: symbol, Side: domain.SideBuy, Quantity: quantity, FillPrice: price, Status: domain.StatusFilled}
}

func sellTrade(userID uuid.UUID, symbol string, quantity int64, price float64) *domain.Trade {
	return &domain.Trade{UserID: userID, Symbol: symbol, Side: domain.SideSell, Quantity: quantity, FillPrice: price, Status: domain.StatusFilled}
}

func quoteFor(symbol string, price float64) *domain.Quote {
	return &domain.Quote{Symbol: symbol, Price: price, Source: "test"}
}

func TestAccountingService_Positions_SignedSum(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{
		buyTrade(userID, "AAPL", 10, 100),
		buyTrade(userID, "AAPL", 5, 110),
		sellTrade(userID, "AAPL", 3, 120),
		buyTrade(userID, "MSFT", 7, 300),
		sellTrade(userID, "MSFT", 7, 310),
		sellTrade(userID, "TSLA", 4, 200),
	}, nil)

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	positions, err := svc.Positions(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"AAPL": 12,
		"TSLA": -4,
	}, positions)
	// MSFT netted to zero and must not appear
	_, ok := positions["MSFT"]
	assert.False(t, ok)
}

func TestAccountingService_Positions_Empty(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{}, nil)

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	positions, err := svc.Positions(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, positions)
}

func TestAccountingService_PnL_WeightedAverage(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	// qty = 15, cost = 10*100 + 5*110 = 1550, avg = 1550/15
	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{
		buyTrade(userID, "AAPL", 10, 100),
		buyTrade(userID, "AAPL", 5, 110),
	}, nil)
	quotes.On("LatestPrice", mock.Anything, "AAPL").Return(quoteFor("AAPL", 120), nil)

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	entries, err := svc.PnL(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "AAPL", entry.Symbol)
	assert.Equal(t, int64(15), entry.Quantity)
	assert.InDelta(t, 1550.0/15.0, entry.AvgEntry, 1e-9)
	assert.Equal(t, 120.0, entry.LastPrice)
	assert.InDelta(t, (120.0-1550.0/15.0)*15.0, entry.UnrealizedPnL, 1e-9)
}

func TestAccountingService_PnL_SellReducesCostSymmetrically(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	// Symmetric convention: the SELL at 120 moves cost by -5*120, so the
	// remaining 5 shares carry avg (1000-600)/5 = 80, not the true basis 100.
	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{
		buyTrade(userID, "AAPL", 10, 100),
		sellTrade(userID, "AAPL", 5, 120),
	}, nil)
	quotes.On("LatestPrice", mock.Anything, "AAPL").Return(quoteFor("AAPL", 110), nil)

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	entries, err := svc.PnL(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].Quantity)
	assert.InDelta(t, 80.0, entries[0].AvgEntry, 1e-9)
	assert.InDelta(t, (110.0-80.0)*5.0, entries[0].UnrealizedPnL, 1e-9)
}

func TestAccountingService_PnL_ShortPosition(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{
		sellTrade(userID, "TSLA", 10, 100),
	}, nil)
	quotes.On("LatestPrice", mock.Anything, "TSLA").Return(quoteFor("TSLA", 90), nil)

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	entries, err := svc.PnL(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(-10), entries[0].Quantity)
	assert.InDelta(t, 100.0, entries[0].AvgEntry, 1e-9)
	// Short 10 at 100, price dropped to 90: gain of 100
	assert.InDelta(t, 100.0, entries[0].UnrealizedPnL, 1e-9)
}

func TestAccountingService_PnL_ClosedPositionExcluded(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{
		buyTrade(userID, "AAPL", 10, 100),
		sellTrade(userID, "AAPL", 10, 120),
	}, nil)

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	entries, err := svc.PnL(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, entries)
	// No open symbols, so no quote should ever be fetched
	quotes.AssertNotCalled(t, "LatestPrice", mock.Anything, mock.Anything)
}

func TestAccountingService_PnL_QuoteFailureFailsWholeCall(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{
		buyTrade(userID, "AAPL", 10, 100),
		buyTrade(userID, "MSFT", 5, 300),
	}, nil)
	quotes.On("LatestPrice", mock.Anything, "AAPL").Return(quoteFor("AAPL", 120), nil).Maybe()
	quotes.On("LatestPrice", mock.Anything, "MSFT").
		Return(nil, &domain.MarketDataError{Symbol: "MSFT", Err: errors.New("provider down")}).Maybe()

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	entries, err := svc.PnL(context.Background(), userID)

	assert.Error(t, err)
	assert.Nil(t, entries)
	var marketErr *domain.MarketDataError
	assert.ErrorAs(t, err, &marketErr)
}

func TestAccountingService_PnL_ReadIsIdempotent(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	repo.On("ListByUser", mock.Anything, userID).Return([]*domain.Trade{
		buyTrade(userID, "AAPL", 10, 100),
	}, nil)
	quotes.On("LatestPrice", mock.Anything, "AAPL").Return(quoteFor("AAPL", 105), nil)

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	first, err := svc.PnL(context.Background(), userID)
	assert.NoError(t, err)
	second, err := svc.PnL(context.Background(), userID)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAccountingService_PnL_LedgerErrorPropagates(t *testing.T) {
	userID := uuid.New()
	repo := new(MockTradeRepository)
	quotes := new(MockQuoteSource)

	repo.On("ListByUser", mock.Anything, userID).
		Return(nil, &domain.LedgerError{Op: "list", Err: errors.New("connection reset")})

	svc := NewAccountingService(repo, quotes, zap.NewNop())

	_, err := svc.PnL(context.Background(), userID)

	var ledgerErr *domain.LedgerError
	assert.ErrorAs(t, err, &ledgerErr)
	quotes.AssertNotCalled(t, "LatestPrice", mock.Anything, mock.Anything)
}
