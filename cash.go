package alphafund

import (
	"github.com/alphafund/alphafund/date"
)

// CashLedger derives the portfolio's daily uninvested-cash balance from
// the purchase costs of its positions. The balance series runs from the
// earliest purchase date through the day before the as-of date: the as-of
// day itself is considered not yet settled, which avoids counting an open
// position both in cash and in its own valuation on the same day.
type CashLedger struct {
	initial float64
	history *date.History[float64]
}

// NewCashLedger computes the daily cash balance for the given positions.
// On any day the balance is the initial cash minus the purchase cost of
// every position whose holding period includes that day. A position that
// is not yet purchased, or already sold, contributes zero that day: never
// missing data.
func NewCashLedger(initialCash float64, positions []*Position, asOf date.Date) *CashLedger {
	ledger := &CashLedger{initial: initialCash, history: new(date.History[float64])}
	if len(positions) == 0 {
		return ledger
	}

	from := positions[0].Holding().From
	for _, p := range positions[1:] {
		if p.Holding().From.Before(from) {
			from = p.Holding().From
		}
	}
	to := asOf.Add(-1)
	if from.After(to) {
		return ledger
	}

	for on := range date.NewRange(from, to).Days() {
		balance := initialCash
		for _, p := range positions {
			if deductsCash(p, on, asOf) {
				balance -= p.Cost()
			}
		}
		ledger.history.Append(on, balance)
	}
	return ledger
}

// deductsCash reports whether the position's purchase cost is tied up on
// the given day. A sale date equal to the as-of date is the "still open"
// sentinel, so that day is not yet reflected in cash.
func deductsCash(p *Position, on, asOf date.Date) bool {
	sold := p.Holding().To
	if sold == asOf {
		sold = asOf.Add(-1)
	}
	return !on.Before(p.Holding().From) && !on.After(sold)
}

// InitialCash returns the portfolio's starting cash.
func (c *CashLedger) InitialCash() float64 { return c.initial }

// History returns the daily balance series.
func (c *CashLedger) History() *date.History[float64] { return c.history }

// Balance returns the cash balance on the given day. Days after the
// series end report false: the balance there is not yet settled.
func (c *CashLedger) Balance(on date.Date) (float64, bool) {
	return c.history.Get(on)
}
