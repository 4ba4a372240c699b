package eodhd

import (
	"context"

	"github.com/alphafund/alphafund"
	"github.com/alphafund/alphafund/date"
)

// Source adapts the client to the valuation engine's market data
// boundary. The engine fetches by bare book ticker; Source resolves each
// one to its EODHD symbol using the asset type recorded on the trade, so
// "AAPL" hits "AAPL.US" and a crypto "BTC" hits "BTC-USD.CC".
type Source struct {
	client *Client
	assets map[string]alphafund.AssetType
}

var _ alphafund.MarketDataSource = (*Source)(nil)

// NewSource builds the market data source for a trade book. Tickers
// absent from the book resolve with the equity default.
func NewSource(client *Client, trades []alphafund.Trade) *Source {
	assets := make(map[string]alphafund.AssetType, len(trades))
	for _, t := range trades {
		assets[t.Ticker] = t.Asset
	}
	return &Source{client: client, assets: assets}
}

// Symbol resolves a book ticker to its EODHD symbol.
func (s *Source) Symbol(ticker string) string {
	return Symbol(ticker, s.assets[ticker])
}

// Fetch implements alphafund.MarketDataSource.
func (s *Source) Fetch(ctx context.Context, ticker string, over date.Range) (*date.History[float64], error) {
	return s.client.Fetch(ctx, s.Symbol(ticker), over)
}
