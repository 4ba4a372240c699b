package renderer

import (
	"github.com/alphafund/alphafund"
)

// Allocation is the view of the point-in-time allocation breakdown.
type Allocation struct {
	Name       string          `json:"name,omitempty"`
	Date       string          `json:"date"`
	Rows       []AllocationRow `json:"rows"`
	Cash       string          `json:"cash"`
	CashWeight string          `json:"cashWeight"`
	Total      string          `json:"total"`
}

// AllocationRow is one asset line of the allocation report.
type AllocationRow struct {
	Ticker   string `json:"ticker"`
	Quantity string `json:"quantity"`
	Value    string `json:"value"`
	Weight   string `json:"weight"`
}

// NewAllocation builds the allocation view from the engine's breakdown.
func NewAllocation(name string, a *alphafund.Allocation) *Allocation {
	view := &Allocation{
		Name:  name,
		Date:  a.Date.String(),
		Cash:  a.Cash.String(),
		Total: a.Total.String(),
	}
	if !a.Total.IsZero() {
		view.CashWeight = alphafund.PercentOf(a.Cash.Float64() / a.Total.Float64()).String()
	}
	for _, h := range a.Holdings {
		view.Rows = append(view.Rows, AllocationRow{
			Ticker:   h.Ticker,
			Quantity: h.Quantity.String(),
			Value:    h.Value.String(),
			Weight:   h.Weight.String(),
		})
	}
	return view
}
