package infra

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"papertrade/internal/domain"
)

// Scheduler runs a periodic probe against the quote provider for a set of
// watch symbols and logs availability. It keeps no state and never feeds
// prices back into the core: PnL and execution always fetch fresh quotes.
type Scheduler struct {
	cron    *cron.Cron
	quotes  domain.QuoteSource
	symbols []string
	logger  *zap.Logger
}

// NewScheduler creates a new quote provider health watch
func NewScheduler(quotes domain.QuoteSource, symbols []string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		quotes:  quotes,
		symbols: symbols,
		logger:  logger,
	}
}

// Start begins probing every 5 minutes. A scheduler with no watch symbols is
// a no-op.
func (s *Scheduler) Start() error {
	if len(s.symbols) == 0 {
		s.logger.Info("no market watch symbols configured, health watch disabled")
		return nil
	}

	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.probe(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("market data health watch started", zap.Strings("symbols", s.symbols))
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) probe(ctx context.Context) {
	for _, symbol := range s.symbols {
		start := time.Now()
		quote, err := s.quotes.LatestPrice(ctx, symbol)
		if err != nil {
			s.logger.Warn("quote provider probe failed",
				zap.String("symbol", symbol),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			continue
		}
		s.logger.Debug("quote provider probe ok",
			zap.String("symbol", symbol),
			zap.Float64("price", quote.Price),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
