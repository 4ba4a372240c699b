package alphafund

import (
	"fmt"

	"github.com/alphafund/alphafund/date"
	"github.com/shopspring/decimal"
)

// Trade is one input record of the portfolio: a single holding with its
// purchase terms, direction, and leverage. The purchase price is not part
// of the record: it is read from market data on the purchase date.
type Trade struct {
	Ticker    string          `json:"ticker"`
	Quantity  decimal.Decimal `json:"quantity"`
	Asset     AssetType       `json:"asset"`
	Purchased date.Date       `json:"purchased"`
	// Sold is the exit date. The zero value means the position is still
	// open and is valued through the portfolio's as-of date.
	Sold     date.Date `json:"sold,omitempty"`
	Leverage float64   `json:"leverage"`
	Short    bool      `json:"short,omitempty"`
}

// NewTrade builds a Trade from string dates, resolving defaults: an empty
// sold date means "still open", a zero leverage means 1. The returned
// trade is validated against the given as-of date.
func NewTrade(ticker string, quantity decimal.Decimal, asset AssetType, purchased, sold string, leverage float64, short bool, asOf date.Date) (Trade, error) {
	p, err := date.Parse(purchased)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: trade %s purchase date: %v", ErrInvalidDateFormat, ticker, err)
	}
	var s date.Date
	if sold != "" {
		if s, err = date.Parse(sold); err != nil {
			return Trade{}, fmt.Errorf("%w: trade %s sale date: %v", ErrInvalidDateFormat, ticker, err)
		}
	}
	if leverage == 0 {
		leverage = 1
	}
	t := Trade{
		Ticker:    ticker,
		Quantity:  quantity,
		Asset:     asset,
		Purchased: p,
		Sold:      s,
		Leverage:  leverage,
		Short:     short,
	}
	if err := t.Validate(asOf); err != nil {
		return Trade{}, err
	}
	return t, nil
}

// EffectiveSold returns the exit date used for valuation: the explicit
// sale date, or the as-of date for a position still open.
func (t Trade) EffectiveSold(asOf date.Date) date.Date {
	if t.Sold.IsZero() {
		return asOf
	}
	return t.Sold
}

// Holding returns the date range over which the trade holds the asset.
func (t Trade) Holding(asOf date.Date) date.Range {
	return date.Range{From: t.Purchased, To: t.EffectiveSold(asOf)}
}

// direction is +1 for a long trade and -1 for a short one.
func (t Trade) direction() float64 {
	if t.Short {
		return -1
	}
	return 1
}

// Validate checks the trade record against the construction contract.
// Any failure is fatal: no partial position is ever built from an invalid
// trade.
func (t Trade) Validate(asOf date.Date) error {
	if t.Ticker == "" {
		return fmt.Errorf("trade has no ticker")
	}
	if t.Purchased.IsZero() {
		return fmt.Errorf("%w: trade %s has no purchase date", ErrInvalidDateFormat, t.Ticker)
	}
	if t.Quantity.Sign() <= 0 {
		return fmt.Errorf("%w: trade %s quantity %s", ErrInvalidQuantity, t.Ticker, t.Quantity)
	}
	if t.Leverage <= 0 {
		return fmt.Errorf("%w: trade %s leverage %g", ErrInvalidLeverage, t.Ticker, t.Leverage)
	}
	sold := t.EffectiveSold(asOf)
	if t.Purchased.After(sold) {
		return fmt.Errorf("%w: trade %s purchased %s sold %s", ErrInvalidDateRange, t.Ticker, t.Purchased, sold)
	}
	// The calendar rule applies to the explicit exit date only: an open
	// position's as-of date is a valuation date, not an exit.
	if !t.Sold.IsZero() && !t.Asset.Calendar().Open(t.Sold) {
		return fmt.Errorf("%w: trade %s (%s) sold %s", ErrClosedMarketDate, t.Ticker, t.Asset, t.Sold)
	}
	return nil
}
