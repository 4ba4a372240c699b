package alphafund

import (
	"context"
	"fmt"

	"github.com/alphafund/alphafund/date"
	"github.com/shopspring/decimal"
)

// Portfolio owns the trade list, the initial cash, and the explicit as-of
// date every computation is anchored to. It builds positions from an
// injected MarketDataSource and caches the merged valuation table; adding
// a trade invalidates the cache, which is then recomputed from scratch
// rather than patched incrementally.
//
// A Portfolio is not safe for concurrent use. Valuation itself is a pure
// merge over immutable series; the only parallelism is the per-ticker
// market data prefetch inside load.
type Portfolio struct {
	initialCash Money
	asOf        date.Date
	source      MarketDataSource

	trades    []Trade
	positions []*Position // built lazily from trades
	cash      *CashLedger
	table     *Table // cached aggregate, nil when stale
}

// NewPortfolio creates an empty portfolio valued as of the given date.
func NewPortfolio(initialCash Money, asOf date.Date, source MarketDataSource) *Portfolio {
	return &Portfolio{initialCash: initialCash, asOf: asOf, source: source}
}

// AsOf returns the valuation anchor date.
func (p *Portfolio) AsOf() date.Date { return p.asOf }

// InitialCash returns the portfolio's starting cash.
func (p *Portfolio) InitialCash() Money { return p.initialCash }

// Trades returns the trade records in insertion order.
func (p *Portfolio) Trades() []Trade { return p.trades }

// AddTrade validates and appends a trade, invalidating any cached
// valuation. An invalid trade is rejected, never silently dropped.
func (p *Portfolio) AddTrade(t Trade) error {
	if err := t.Validate(p.asOf); err != nil {
		return err
	}
	p.trades = append(p.trades, t)
	p.positions = nil
	p.cash = nil
	p.table = nil
	return nil
}

// load fetches market data for every trade (concurrently, one request per
// trade) and constructs the positions and the cash ledger. Construction
// failures are fatal: a portfolio cannot proceed with a missing asset.
func (p *Portfolio) load(ctx context.Context) error {
	if p.positions != nil {
		return nil
	}

	reqs := make([]priceRequest, len(p.trades))
	for i, t := range p.trades {
		reqs[i] = priceRequest{Ticker: t.Ticker, Over: t.Holding(p.asOf)}
	}
	histories, err := fetchAll(ctx, p.source, reqs)
	if err != nil {
		return err
	}

	positions := make([]*Position, len(p.trades))
	for i, t := range p.trades {
		pos, err := NewPosition(t, histories[i], p.asOf)
		if err != nil {
			return err
		}
		positions[i] = pos
	}
	p.positions = positions
	p.cash = NewCashLedger(p.initialCash.Float64(), positions, p.asOf)
	return nil
}

// Positions returns the constructed positions, fetching market data on
// first use.
func (p *Portfolio) Positions(ctx context.Context) ([]*Position, error) {
	if err := p.load(ctx); err != nil {
		return nil, err
	}
	return p.positions, nil
}

// CashLedger returns the daily cash balance series, fetching market data
// on first use.
func (p *Portfolio) CashLedger(ctx context.Context) (*CashLedger, error) {
	if err := p.load(ctx); err != nil {
		return nil, err
	}
	return p.cash, nil
}

// Valuation returns the merged daily valuation table: one column per
// asset, one for cash, and a sum column, aligned on calendar days with no
// missing value. The table is cached until the trade list changes.
func (p *Portfolio) Valuation(ctx context.Context) (*Table, error) {
	if p.table != nil {
		return p.table, nil
	}
	if err := p.load(ctx); err != nil {
		return nil, err
	}
	p.table = newTable(p.positions, p.cash)
	return p.table, nil
}

// Value returns the most recent total portfolio value.
func (p *Portfolio) Value(ctx context.Context) (float64, error) {
	table, err := p.Valuation(ctx)
	if err != nil {
		return 0, err
	}
	return table.Total(), nil
}

// Liquidate returns the value of selling every position at its most
// recent price and adding the last settled cash balance.
func (p *Portfolio) Liquidate(ctx context.Context) (Money, error) {
	if err := p.load(ctx); err != nil {
		return Money{}, err
	}
	total := 0.0
	for _, pos := range p.positions {
		total += pos.Value()
	}
	_, balance := p.cash.History().Latest()
	if p.cash.History().Len() == 0 {
		balance = p.initialCash.Float64()
	}
	return M(total+balance, p.initialCash.Currency()), nil
}

// Holding is one line of an allocation breakdown.
type Holding struct {
	Ticker   string
	Quantity decimal.Decimal
	Value    Money
	Weight   Percent
}

// Allocation is the point-in-time breakdown of the portfolio: how the
// total value splits across assets and cash on the table's last day.
type Allocation struct {
	Date     date.Date
	Holdings []Holding
	Cash     Money
	Total    Money
}

// Allocation computes the breakdown on the most recent fully defined day.
func (p *Portfolio) Allocation(ctx context.Context) (*Allocation, error) {
	table, err := p.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	on, ok := table.End()
	if !ok {
		return nil, fmt.Errorf("empty valuation table, nothing to allocate")
	}

	currency := p.initialCash.Currency()
	cash, _ := table.Cash(on)
	total, _ := table.Sum(on)

	a := &Allocation{
		Date:  on,
		Cash:  M(cash, currency),
		Total: M(total, currency),
	}
	for _, ticker := range table.Tickers() {
		value, _ := table.Value(ticker, on)
		qty := decimal.Zero
		for _, pos := range p.positions {
			if pos.Ticker() == ticker && pos.Holds(on) {
				qty = qty.Add(pos.Trade().Quantity)
			}
		}
		h := Holding{
			Ticker:   ticker,
			Quantity: qty,
			Value:    M(value, currency),
		}
		if total != 0 {
			h.Weight = PercentOf(value / total)
		}
		a.Holdings = append(a.Holdings, h)
	}
	return a, nil
}
