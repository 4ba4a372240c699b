package eodhd

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"github.com/PaesslerAG/jsonpath"

	"github.com/alphafund/alphafund"
)

// Quote returns the most recent intraday price of a symbol, from the
// last bar of today's intraday series. This is a monitoring convenience;
// the valuation engine itself only consumes daily closes.
//
//	[
//	  {
//	    "timestamp": 1709821800,
//	    "datetime": "2024-03-07 14:30:00",
//	    "open": 169.15,
//	    "high": 169.42,
//	    "low": 168.94,
//	    "close": 169.3,
//	    "volume": 1046232
//	  },
//	  ...
func (c *Client) Quote(ctx context.Context, ticker string) (float64, error) {
	addr := fmt.Sprintf("%s/intraday/%s?fmt=json&interval=5m&api_token=%s",
		c.baseURL, url.PathEscape(ticker), c.apiKey)

	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("%w: eodhd intraday %s: %v", alphafund.ErrDataUnavailable, ticker, err)
	}

	path := "$[-1:].close"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("no intraday data for %q: %q %w", ticker, path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("intraday %q: %q is not a float: %v", ticker, path, jval)
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("intraday %q: empty last bar", ticker)
	}
	return val, nil
}
