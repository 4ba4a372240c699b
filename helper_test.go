package alphafund

import (
	"context"
	"fmt"

	"github.com/alphafund/alphafund/date"
	"github.com/shopspring/decimal"
)

// staticSource is an in-memory MarketDataSource for tests: a fixed price
// history per ticker, sliced to the requested range on fetch.
type staticSource map[string]*date.History[float64]

func (s staticSource) Fetch(_ context.Context, ticker string, over date.Range) (*date.History[float64], error) {
	h, ok := s[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: unknown ticker %q", ErrDataUnavailable, ticker)
	}
	out := new(date.History[float64])
	for on, v := range h.Values() {
		if over.Contains(on) {
			out.Append(on, v)
		}
	}
	return out, nil
}

// prices builds a history of consecutive daily prices starting at from.
func prices(from date.Date, values ...float64) *date.History[float64] {
	h := new(date.History[float64])
	for i, v := range values {
		h.Append(from.Add(i), v)
	}
	return h
}

// qty is a shorthand for decimal quantities in tests.
func qty(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
