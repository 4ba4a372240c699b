package alphafund

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alphafund/alphafund/date"
	"github.com/sirupsen/logrus"
)

// MarketDataSource supplies raw daily closing prices for a ticker over a
// date range. Implementations may return fewer days than requested when
// the market does not trade every calendar day; they report a failure
// wrapping ErrDataUnavailable when the ticker is unknown or the remote
// source is unreachable.
type MarketDataSource interface {
	Fetch(ctx context.Context, ticker string, over date.Range) (*date.History[float64], error)
}

// FetchFunc adapts a plain function to the MarketDataSource interface.
type FetchFunc func(ctx context.Context, ticker string, over date.Range) (*date.History[float64], error)

func (f FetchFunc) Fetch(ctx context.Context, ticker string, over date.Range) (*date.History[float64], error) {
	return f(ctx, ticker, over)
}

// WithRetry decorates a source with bounded backoff: unavailable data is
// retried up to attempts times, doubling the wait between tries. Other
// failures are not retried; on exhaustion the last failure propagates,
// because valuing a portfolio with a silently missing asset is worse than
// failing.
func WithRetry(src MarketDataSource, attempts int, wait time.Duration, log *logrus.Logger) MarketDataSource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	// A non-positive attempts count means a single try, never an
	// unbounded retry loop.
	if attempts < 1 {
		attempts = 1
	}
	return FetchFunc(func(ctx context.Context, ticker string, over date.Range) (*date.History[float64], error) {
		var err error
		for attempt, delay := 1, wait; ; attempt, delay = attempt+1, delay*2 {
			var prices *date.History[float64]
			prices, err = src.Fetch(ctx, ticker, over)
			if err == nil {
				return prices, nil
			}
			if !errors.Is(err, ErrDataUnavailable) || attempt == attempts {
				break
			}
			log.WithFields(logrus.Fields{
				"ticker":  ticker,
				"attempt": attempt,
				"wait":    delay,
			}).Warnf("market data fetch failed, retrying: %v", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		return nil, fmt.Errorf("fetching %s over %s: %w", ticker, over, err)
	})
}

// priceRequest identifies one price history to fetch.
type priceRequest struct {
	Ticker string
	Over   date.Range
}

// fetchAll retrieves every requested price history concurrently. Results
// are aligned with the requests, so fetch order cannot change valuation
// results. Any failure fails the whole batch: the aggregator must not
// proceed with a partially populated portfolio.
func fetchAll(ctx context.Context, src MarketDataSource, reqs []priceRequest) ([]*date.History[float64], error) {
	results := make([]*date.History[float64], len(reqs))
	errs := make([]error, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req priceRequest) {
			defer wg.Done()
			results[i], errs[i] = src.Fetch(ctx, req.Ticker, req.Over)
		}(i, req)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
