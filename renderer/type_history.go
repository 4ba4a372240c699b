package renderer

import (
	"github.com/alphafund/alphafund"
)

// History is the view of the daily valuation table: one row per day with
// pre-formatted money columns, so the template stays free of number
// handling.
type History struct {
	Name    string       `json:"name,omitempty"`
	Tickers []string     `json:"tickers"`
	Rows    []HistoryRow `json:"rows"`
}

// HistoryRow is one date-aligned line of the history report.
type HistoryRow struct {
	Date   string   `json:"date"`
	Values []string `json:"values"` // aligned with History.Tickers
	Cash   string   `json:"cash"`
	Total  string   `json:"total"`
	Return string   `json:"return"`
}

// NewHistory builds the history view from a valuation table. The
// currency is the portfolio's cash currency; the return column follows
// the cumulative return since the first row.
func NewHistory(name string, t *alphafund.Table, currency string) *History {
	h := &History{
		Name:    name,
		Tickers: t.Tickers(),
	}
	returns := t.Returns()
	for on, row := range t.Rows() {
		r := HistoryRow{
			Date:  on.String(),
			Cash:  alphafund.M(row.Cash, currency).String(),
			Total: alphafund.M(row.Sum, currency).String(),
		}
		for _, v := range row.Values {
			r.Values = append(r.Values, alphafund.M(v, currency).String())
		}
		if ret, ok := returns.Get(on); ok {
			r.Return = alphafund.PercentOf(ret).SignedString()
		}
		h.Rows = append(h.Rows, r)
	}
	return h
}
