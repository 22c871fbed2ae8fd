package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trade represents an executed paper trade. Trades are append-only: once the
// ledger has assigned an ID and timestamp the record is never mutated.
type Trade struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Quantity  int64     `json:"quantity"`
	FillPrice float64   `json:"fill_price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Trade side constants
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Trade status constants. Paper fills are immediate, so every admitted trade
// is FILLED; no partial-fill or reject states exist.
const (
	StatusFilled = "FILLED"
)

// MaxSymbolLen is the longest symbol the ledger accepts after normalization.
const MaxSymbolLen = 16

// NormalizeSymbol uppercases and trims a ticker symbol, rejecting empty or
// oversized input before any I/O happens.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", &ValidationError{Field: "symbol", Reason: "symbol must not be empty"}
	}
	if len(s) > MaxSymbolLen {
		return "", &ValidationError{Field: "symbol", Reason: "symbol must be at most 16 characters"}
	}
	return s, nil
}

// ValidateSide checks that a trade side is one of BUY or SELL.
func ValidateSide(side string) error {
	if side != SideBuy && side != SideSell {
		return &ValidationError{Field: "side", Reason: "side must be BUY or SELL"}
	}
	return nil
}

// ValidateQuantity checks that a trade quantity is a positive integer.
func ValidateQuantity(quantity int64) error {
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "quantity must be positive"}
	}
	return nil
}
