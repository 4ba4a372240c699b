package renderer

import (
	"github.com/alphafund/alphafund"
)

// Summary is the one-look view of the portfolio: its latest settled
// value, the liquidation value, and the cumulative return since
// inception.
type Summary struct {
	Name        string `json:"name,omitempty"`
	Date        string `json:"date"`
	Initial     string `json:"initial"`
	Total       string `json:"total"`
	Return      string `json:"return"`
	Liquidation string `json:"liquidation"`
	// Truncated lists assets whose price feed lags behind the valuation
	// date; their trailing days were trimmed from the table.
	Truncated []string `json:"truncated,omitempty"`
}

// NewSummary builds the summary view from the table, the liquidation
// value, and the positions.
func NewSummary(name string, t *alphafund.Table, initial, liquidation alphafund.Money, positions []*alphafund.Position) *Summary {
	s := &Summary{
		Name:        name,
		Initial:     initial.String(),
		Liquidation: liquidation.String(),
	}
	if on, ok := t.End(); ok {
		s.Date = on.String()
		s.Total = alphafund.M(t.Total(), initial.Currency()).String()
	}
	if returns := t.Returns(); returns.Len() > 0 {
		_, ret := returns.Latest()
		s.Return = alphafund.PercentOf(ret).SignedString()
	}
	for _, p := range positions {
		if p.Truncated() {
			s.Truncated = append(s.Truncated, p.Ticker())
		}
	}
	return s
}
