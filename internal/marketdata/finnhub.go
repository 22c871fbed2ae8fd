package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"papertrade/configs"
	"papertrade/internal/domain"
)

const (
	defaultBaseURL = "https://finnhub.io/api/v1"
	requestTimeout = 10 * time.Second

	// Feature window: the most recent 60 one-minute candles. Fewer than
	// minCandles closes is not enough to compute a 30-step return plus 30
	// step-over-step returns with any margin, so the call fails instead of
	// returning a degenerate volatility.
	featureWindowMinutes = 60
	featureResolution    = "1"
	returnLookbackSteps  = 30
	minCandles           = 35

	// Finnhub free tier allows 60 requests/minute.
	requestsPerSecond = 1
	requestBurst      = 5
)

// FinnhubClient implements domain.QuoteSource against the Finnhub REST API.
type FinnhubClient struct {
	client  *resty.Client
	apiKey  string
	logger  *zap.Logger
	limiter *rate.Limiter
}

var _ domain.QuoteSource = (*FinnhubClient)(nil)

// NewFinnhubClient creates a Finnhub-backed quote source. The API key comes
// from the injected configuration, never from ambient process state.
func NewFinnhubClient(cfg *configs.MarketConfig, logger *zap.Logger) *FinnhubClient {
	baseURL := cfg.FinnhubURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &FinnhubClient{
		client:  client,
		apiKey:  cfg.FinnhubAPIKey,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

type quoteResponse struct {
	Current float64 `json:"c"`
}

// LatestPrice returns the current quote for a symbol.
func (c *FinnhubClient) LatestPrice(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	if c.apiKey == "" {
		return nil, &domain.MarketDataError{Symbol: symbol, Err: errors.New("finnhub API key is not configured")}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.MarketDataError{Symbol: symbol, Err: err}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"token":  c.apiKey,
		}).
		SetResult(&quoteResponse{}).
		Get("/quote")
	if err != nil {
		c.logger.Warn("finnhub quote request failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, &domain.MarketDataError{Symbol: symbol, Err: err}
	}
	if resp.IsError() {
		return nil, &domain.MarketDataError{
			Symbol: symbol,
			Err:    fmt.Errorf("finnhub returned status %d", resp.StatusCode()),
		}
	}

	result := resp.Result().(*quoteResponse)
	if result.Current == 0 {
		return nil, &domain.MarketDataError{Symbol: symbol, Err: errors.New("no price data available")}
	}

	return &domain.Quote{
		Symbol:    symbol,
		Price:     result.Current,
		Timestamp: time.Now().UTC(),
		Source:    "finnhub",
	}, nil
}

type candleResponse struct {
	Status string    `json:"s"`
	Closes []float64 `json:"c"`
}

// RecentFeatures fetches the last hour of one-minute candles and derives the
// 30-step return and the sample standard deviation of one-step returns.
func (c *FinnhubClient) RecentFeatures(ctx context.Context, symbol string) (*domain.MarketFeatures, error) {
	symbol, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	closes, err := c.recentCloses(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if len(closes) < minCandles {
		return nil, &domain.MarketDataError{
			Symbol: symbol,
			Err:    fmt.Errorf("not enough candle data to compute features: got %d closes", len(closes)),
		}
	}

	recentReturn, volatility := computeFeatures(closes)

	return &domain.MarketFeatures{
		Symbol:        symbol,
		RecentReturn:  recentReturn,
		Volatility:    volatility,
		Timestamp:     time.Now().UTC(),
		Source:        "finnhub",
		Resolution:    featureResolution,
		WindowMinutes: featureWindowMinutes,
	}, nil
}

func (c *FinnhubClient) recentCloses(ctx context.Context, symbol string) ([]float64, error) {
	if c.apiKey == "" {
		return nil, &domain.MarketDataError{Symbol: symbol, Err: errors.New("finnhub API key is not configured")}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.MarketDataError{Symbol: symbol, Err: err}
	}

	now := time.Now().UTC()
	to := now.Unix()
	from := now.Add(-featureWindowMinutes * time.Minute).Unix()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":     symbol,
			"resolution": featureResolution,
			"from":       strconv.FormatInt(from, 10),
			"to":         strconv.FormatInt(to, 10),
			"token":      c.apiKey,
		}).
		SetResult(&candleResponse{}).
		Get("/stock/candle")
	if err != nil {
		c.logger.Warn("finnhub candle request failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, &domain.MarketDataError{Symbol: symbol, Err: err}
	}
	if resp.IsError() {
		return nil, &domain.MarketDataError{
			Symbol: symbol,
			Err:    fmt.Errorf("finnhub returned status %d", resp.StatusCode()),
		}
	}

	result := resp.Result().(*candleResponse)
	if result.Status != "ok" || len(result.Closes) == 0 {
		return nil, &domain.MarketDataError{Symbol: symbol, Err: errors.New("no candle data available")}
	}

	return result.Closes, nil
}

// computeFeatures derives (recentReturn, volatility) from a series of closes
// with at least minCandles entries.
//
// recentReturn is the return over the last returnLookbackSteps steps:
// last/closes[len-1-steps] - 1. volatility is the sample standard deviation
// (N-1 divisor, guarded against zero) of the one-step returns across the last
// returnLookbackSteps indexes.
func computeFeatures(closes []float64) (recentReturn, volatility float64) {
	n := len(closes)

	last := closes[n-1]
	prev := closes[n-1-returnLookbackSteps]
	recentReturn = last/prev - 1.0

	var rets []float64
	for i := n - returnLookbackSteps; i < n; i++ {
		if i == 0 {
			continue
		}
		rets = append(rets, closes[i]/closes[i-1]-1.0)
	}

	var mean float64
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	var variance float64
	for _, r := range rets {
		variance += (r - mean) * (r - mean)
	}
	divisor := len(rets) - 1
	if divisor < 1 {
		divisor = 1
	}
	variance /= float64(divisor)

	return recentReturn, math.Sqrt(variance)
}
