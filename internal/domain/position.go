package domain

// PnLEntry is one open position marked to the current market price.
// Positions are derived from the trade history on every request and are never
// stored; a symbol whose signed quantity nets to zero is considered closed and
// does not produce an entry.
type PnLEntry struct {
	Symbol        string  `json:"symbol"`
	Quantity      int64   `json:"quantity"`
	AvgEntry      float64 `json:"avg_entry"`
	LastPrice     float64 `json:"last_price"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
}
