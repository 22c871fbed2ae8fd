// Package marketdata provides quote source implementations backed by external
// market data providers. The provider is selected by explicit configuration at
// construction time.
package marketdata

import (
	"fmt"

	"go.uber.org/zap"

	"papertrade/configs"
	"papertrade/internal/domain"
)

// NewQuoteSource constructs the quote source selected by the configuration.
func NewQuoteSource(cfg *configs.MarketConfig, log *zap.Logger) (domain.QuoteSource, error) {
	switch cfg.Provider {
	case "finnhub":
		return NewFinnhubClient(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported market data provider: %s", cfg.Provider)
	}
}
