package domain

import "fmt"

// ValidationError reports malformed input. It is raised before any I/O and is
// never worth retrying with the same arguments.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MarketDataError reports that the quote provider was unreachable,
// unconfigured, or returned no usable data. The condition is recoverable by
// retrying later; no trade is recorded when execution hits it.
type MarketDataError struct {
	Symbol string
	Err    error
}

func (e *MarketDataError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("market data unavailable for %s: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("market data unavailable: %v", e.Err)
}

func (e *MarketDataError) Unwrap() error { return e.Err }

// LedgerError reports a persistence failure on a trade append or read. The
// core surfaces it unchanged and never retries writes.
type LedgerError struct {
	Op  string
	Err error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Err)
}

func (e *LedgerError) Unwrap() error { return e.Err }
