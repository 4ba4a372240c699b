package alphafund

import (
	"iter"
	"slices"
	"strings"

	"github.com/alphafund/alphafund/date"
)

// Table is the merged portfolio valuation: a date-indexed table with one
// column per asset ticker, one cash column, and a sum column. Within its
// range the table has no missing value: a position not held on a given
// day contributes zero, and trailing days where some column is still
// waiting for market data are trimmed away at construction.
type Table struct {
	tickers []string
	dates   []date.Date
	cells   map[string][]float64 // per ticker, aligned with dates
	cash    []float64
	sum     []float64
}

// newTable merges the positions' valuation series and the cash series
// over the union of their date indices, applies the trailing-trim policy,
// and fills the surviving out-of-window cells with zero.
//
// Trailing trim scans from the most recent date backward and drops every
// row where at least one column is undefined, stopping at the first fully
// defined row. A column is undefined on a day when data is expected there
// but absent: an open position whose price feed has not yet published
// that day, or the cash balance past its settled range. A closed position
// is settled, not undefined, after its sale date; gaps in the middle of
// the series cannot occur because every input series is dense.
func newTable(positions []*Position, cash *CashLedger) *Table {
	histories := make([]*date.History[float64], 0, len(positions)+1)
	for _, p := range positions {
		histories = append(histories, p.Valuation())
	}
	histories = append(histories, cash.History())

	var union []date.Date
	for on := range date.Iterate(histories...) {
		union = append(union, on)
	}

	defined := func(on date.Date) bool {
		if _, ok := cash.History().Get(on); !ok {
			r, settled := cash.History().Range()
			if !settled || on.After(r.To) {
				// cash past its settled range (or never settled at all)
				// must not be substituted with zero.
				return false
			}
		}
		for _, p := range positions {
			if !p.Holds(on) {
				continue // settled or not yet purchased: contributes zero
			}
			if _, ok := p.Valuation().Get(on); !ok {
				return false
			}
		}
		return true
	}
	for len(union) > 0 && !defined(union[len(union)-1]) {
		union = union[:len(union)-1]
	}

	t := &Table{
		dates: union,
		cells: make(map[string][]float64),
		cash:  make([]float64, len(union)),
		sum:   make([]float64, len(union)),
	}
	for _, p := range positions {
		if !slices.Contains(t.tickers, p.Ticker()) {
			t.tickers = append(t.tickers, p.Ticker())
		}
	}
	slices.SortFunc(t.tickers, strings.Compare)
	for _, ticker := range t.tickers {
		t.cells[ticker] = make([]float64, len(union))
	}

	for i, on := range union {
		for _, p := range positions {
			if v, ok := p.Valuation().Get(on); ok {
				t.cells[p.Ticker()][i] += v
			}
		}
		if v, ok := cash.Balance(on); ok {
			t.cash[i] = v
		}
		t.sum[i] = t.cash[i]
		for _, ticker := range t.tickers {
			t.sum[i] += t.cells[ticker][i]
		}
	}
	return t
}

// Tickers returns the asset column names, sorted.
func (t *Table) Tickers() []string { return slices.Clone(t.tickers) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.dates) }

// Start returns the first date of the table, or false when empty.
func (t *Table) Start() (date.Date, bool) {
	if len(t.dates) == 0 {
		return date.Date{}, false
	}
	return t.dates[0], true
}

// End returns the last date of the table, or false when empty.
func (t *Table) End() (date.Date, bool) {
	if len(t.dates) == 0 {
		return date.Date{}, false
	}
	return t.dates[len(t.dates)-1], true
}

// Value returns the valuation of one asset column on the given day.
func (t *Table) Value(ticker string, on date.Date) (float64, bool) {
	col, ok := t.cells[ticker]
	if !ok {
		return 0, false
	}
	i, ok := slices.BinarySearchFunc(t.dates, on, compareDates)
	if !ok {
		return 0, false
	}
	return col[i], true
}

// Cash returns the cash balance on the given day.
func (t *Table) Cash(on date.Date) (float64, bool) {
	i, ok := slices.BinarySearchFunc(t.dates, on, compareDates)
	if !ok {
		return 0, false
	}
	return t.cash[i], true
}

// Sum returns the total portfolio value on the given day.
func (t *Table) Sum(on date.Date) (float64, bool) {
	i, ok := slices.BinarySearchFunc(t.dates, on, compareDates)
	if !ok {
		return 0, false
	}
	return t.sum[i], true
}

// Total returns the most recent total portfolio value.
func (t *Table) Total() float64 {
	if len(t.sum) == 0 {
		return 0
	}
	return t.sum[len(t.sum)-1]
}

// Row is one date-aligned line of the table.
type Row struct {
	Values []float64 // aligned with Tickers()
	Cash   float64
	Sum    float64
}

// Rows returns an iterator over the table rows in chronological order.
func (t *Table) Rows() iter.Seq2[date.Date, Row] {
	return func(yield func(date.Date, Row) bool) {
		for i, on := range t.dates {
			row := Row{Cash: t.cash[i], Sum: t.sum[i]}
			for _, ticker := range t.tickers {
				row.Values = append(row.Values, t.cells[ticker][i])
			}
			if !yield(on, row) {
				return
			}
		}
	}
}

// Returns computes the daily cumulative return series of the total value,
// as a fraction of the first day's value: value[t]/value[0] - 1. Positive
// means the portfolio gained since inception; this is the standard return
// convention.
func (t *Table) Returns() *date.History[float64] {
	r := new(date.History[float64])
	if len(t.sum) == 0 || t.sum[0] == 0 {
		return r
	}
	base := t.sum[0]
	for i, on := range t.dates {
		r.Append(on, t.sum[i]/base-1)
	}
	return r
}

func compareDates(a, b date.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
