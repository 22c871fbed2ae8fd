package domain

import "time"

// Quote is a point-in-time price observation from a market data provider.
// Quotes are fetched on demand and never persisted.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// MarketFeatures holds the simple signals derived from a short candle window:
// the return over the last 30 steps and the sample standard deviation of the
// last 30 step-over-step returns.
type MarketFeatures struct {
	Symbol        string    `json:"symbol"`
	RecentReturn  float64   `json:"returns_30m"`
	Volatility    float64   `json:"volatility"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	Resolution    string    `json:"resolution"`
	WindowMinutes int       `json:"window_minutes"`
}
