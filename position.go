package alphafund

import (
	"fmt"

	"github.com/alphafund/alphafund/date"
)

// Position is a valued holding: one trade record bound to its normalized
// daily price history. It is immutable after construction.
type Position struct {
	trade         Trade
	holding       date.Range // expected coverage: purchase date through (effective) sale date
	purchasePrice float64
	valuation     *date.History[float64] // dense daily, may stop before holding.To when the feed lags
}

// NewPosition builds a Position from a validated trade record and the raw
// daily price history fetched for its holding period. It never performs
// I/O: prices come from an injected MarketDataSource upstream, which keeps
// the valuation math testable without network access.
//
// The raw history may omit non-trading days; it is resampled to one value
// per calendar day by carrying the last known price forward. Its first day
// must be the purchase date: the purchase price anchors the whole series.
// When the feed has not yet published the most recent day(s), the
// valuation stops at the last known price day; the portfolio aggregator
// trims those trailing days across all positions.
func NewPosition(t Trade, prices *date.History[float64], asOf date.Date) (*Position, error) {
	if err := t.Validate(asOf); err != nil {
		return nil, err
	}
	holding := t.Holding(asOf)

	if prices.Len() == 0 {
		return nil, fmt.Errorf("%w: %s over %s", ErrEmptyPriceHistory, t.Ticker, holding)
	}
	firstDay, purchasePrice := prices.First()
	if firstDay != holding.From {
		return nil, fmt.Errorf("%w: %s wants %s, market data starts %s", ErrPurchaseDateUnavailable, t.Ticker, holding.From, firstDay)
	}

	// Never extrapolate past the last observed price: forward-filling
	// beyond the feed would hide missing data as a flat line.
	end := holding.To
	if lastDay, _ := prices.Latest(); lastDay.Before(end) {
		end = lastDay
	}
	dense, err := date.ForwardFill(prices, date.Range{From: holding.From, To: end})
	if err != nil {
		return nil, fmt.Errorf("normalizing %s prices: %w", t.Ticker, err)
	}

	qty := t.Quantity.InexactFloat64()
	lev, dir := t.Leverage, t.direction()
	valuation := new(date.History[float64])
	for on, price := range dense.Values() {
		ret := 1 + lev*dir*(price-purchasePrice)/purchasePrice
		valuation.Append(on, qty*purchasePrice*ret)
	}

	return &Position{
		trade:         t,
		holding:       holding,
		purchasePrice: purchasePrice,
		valuation:     valuation,
	}, nil
}

// Trade returns the trade record this position was built from.
func (p *Position) Trade() Trade { return p.trade }

// Ticker returns the asset identifier.
func (p *Position) Ticker() string { return p.trade.Ticker }

// Quantity returns the owned quantity as a float.
func (p *Position) Quantity() float64 { return p.trade.Quantity.InexactFloat64() }

// PurchasePrice returns the price on the purchase date, fixed at construction.
func (p *Position) PurchasePrice() float64 { return p.purchasePrice }

// Cost returns the cash spent to open the position: purchase price times quantity.
// Leverage does not change the cash outlay, only the sensitivity to price moves.
func (p *Position) Cost() float64 { return p.purchasePrice * p.Quantity() }

// Holding returns the expected coverage of the position, purchase date
// through (effective) sale date.
func (p *Position) Holding() date.Range { return p.holding }

// Holds reports whether the position is held on the given day.
func (p *Position) Holds(on date.Date) bool { return p.holding.Contains(on) }

// Valuation returns the dense daily valuation series. Its first value is
// the purchase cost; it may end before Holding().To when the market data
// feed has not yet published the most recent days.
func (p *Position) Valuation() *date.History[float64] { return p.valuation }

// Value returns the most recent valuation.
func (p *Position) Value() float64 {
	_, v := p.valuation.Latest()
	return v
}

// Truncated reports whether the valuation stops short of the expected
// sale date because of trailing missing market data.
func (p *Position) Truncated() bool {
	lastDay, _ := p.valuation.Latest()
	return lastDay.Before(p.holding.To)
}
