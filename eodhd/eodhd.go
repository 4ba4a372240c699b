// Package eodhd fetches daily closing prices from the EODHD API
// (https://eodhd.com) and exposes them as a market data source for the
// valuation engine.
//
// EODHD symbols carry their exchange as a suffix: "AAPL.US" for a US
// equity, "EURUSD.FOREX" for a currency pair, "BTC-USD.CC" for crypto.
// Symbol builds the right suffix from an asset type when the caller only
// has a bare ticker.
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alphafund/alphafund"
	"github.com/alphafund/alphafund/date"
)

// EnvAPIKey is the environment variable holding the EODHD API token.
const EnvAPIKey = "EODHD_API_KEY"

const defaultBaseURL = "https://eodhd.com/api"

// Client queries the EODHD REST API. The zero value is not usable, use
// New.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL redirects the client to another endpoint, used in tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithHTTPClient replaces the underlying HTTP client. The default uses a
// disk cache with daily expiry, so repeated valuations of the same day
// hit the network once.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger replaces the default standard logger.
func WithLogger(log *logrus.Logger) Option { return func(c *Client) { c.log = log } }

// New returns a client authenticated with the given API token. An empty
// token falls back to the EODHD_API_KEY environment variable.
func New(apiKey string, opts ...Option) *Client {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    newDailyCachingClient(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Symbol builds the EODHD symbol for a bare ticker: the asset type picks
// the virtual exchange suffix. A ticker that already carries a suffix is
// returned unchanged.
func Symbol(ticker string, asset alphafund.AssetType) string {
	if strings.Contains(ticker, ".") {
		return ticker
	}
	switch asset {
	case alphafund.Forex:
		return ticker + ".FOREX"
	case alphafund.Crypto:
		return ticker + "-USD.CC"
	default:
		return ticker + ".US"
	}
}

// Fetch returns the daily split-adjusted closing prices for an EODHD
// symbol over the given range, bounds included. Days the market did not
// trade are simply absent; the engine forward-fills them.
func (c *Client) Fetch(ctx context.Context, ticker string, over date.Range) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		c.baseURL, url.PathEscape(ticker), c.apiKey, over.From, over.To)

	type info struct {
		Date  date.Date `json:"date"`
		Close float64   `json:"adjusted_close"`
	}
	content := make([]info, 0)
	if err := c.jwget(ctx, addr, &content); err != nil {
		return nil, fmt.Errorf("%w: eodhd daily prices for %s: %v", alphafund.ErrDataUnavailable, ticker, err)
	}

	prices := new(date.History[float64])
	for _, row := range content {
		prices.Append(row.Date, row.Close)
	}
	c.log.WithFields(logrus.Fields{
		"ticker": ticker,
		"range":  over.String(),
		"days":   prices.Len(),
	}).Debug("fetched daily prices")
	return prices, nil
}

// exchange holds one entry of the EODHD exchanges list.
type exchange struct {
	Name         string
	Code         string
	OperatingMIC string // may be a comma separated list of MICs
	Currency     string
}

// MicToExchangeCode returns a map of MIC to EODHD's internal exchange
// code. EODHD uses its own ids for exchange places, so resolving a
// security given as isin+mic needs this translation first.
func (c *Client) MicToExchangeCode(ctx context.Context) (map[string]string, error) {
	addr := fmt.Sprintf("%s/exchanges-list/?fmt=json&api_token=%s", c.baseURL, c.apiKey)

	content := make([]exchange, 0)
	if err := c.jwget(ctx, addr, &content); err != nil {
		return nil, fmt.Errorf("%w: eodhd exchanges list: %v", alphafund.ErrDataUnavailable, err)
	}
	result := make(map[string]string)
	for _, info := range content {
		for _, mic := range strings.Split(info.OperatingMIC, ",") {
			result[strings.TrimSpace(mic)] = info.Code
		}
	}
	return result, nil
}

// SearchResult is one security matching a search query.
type SearchResult struct {
	Code     string
	Exchange string
	Name     string
	Currency string
	Type     string
	ISIN     string
}

// Search looks up securities by free text, typically an ISIN or a
// company name, and returns the matching EODHD symbols.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?fmt=json&api_token=%s", c.baseURL, url.PathEscape(query), c.apiKey)

	content := make([]SearchResult, 0)
	if err := c.jwget(ctx, addr, &content); err != nil {
		return nil, fmt.Errorf("%w: eodhd search %q: %v", alphafund.ErrDataUnavailable, query, err)
	}
	return content, nil
}
