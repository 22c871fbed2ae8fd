package domain

import "context"

// QuoteSource defines the interface for fetching live market data
type QuoteSource interface {
	// LatestPrice returns the current price for a symbol. It fails with a
	// MarketDataError when the provider is unreachable, unconfigured, or
	// reports no (or a zero) price — it never substitutes a fallback value.
	LatestPrice(ctx context.Context, symbol string) (*Quote, error)

	// RecentFeatures derives MarketFeatures from the most recent candle
	// window. It fails with a MarketDataError when too few data points are
	// available to compute a meaningful volatility.
	RecentFeatures(ctx context.Context, symbol string) (*MarketFeatures, error)
}
