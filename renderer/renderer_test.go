package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alphafund/alphafund"
	"github.com/alphafund/alphafund/date"
	"github.com/shopspring/decimal"
)

var monday = date.New(2022, time.February, 21)

// source serves a fixed climb from 50 to 60 for every ticker.
type source struct{}

func (source) Fetch(_ context.Context, _ string, over date.Range) (*date.History[float64], error) {
	h := new(date.History[float64])
	for i, v := range []float64{50, 52, 54, 56, 58, 60} {
		h.Append(over.From.Add(i), v)
	}
	return h, nil
}

func testPortfolio(t *testing.T) *alphafund.Portfolio {
	t.Helper()
	p := alphafund.NewPortfolio(alphafund.M(100000, "USD"), monday.Add(6), source{})
	err := p.AddTrade(alphafund.Trade{
		Ticker:    "BTC",
		Quantity:  decimal.NewFromInt(10),
		Asset:     alphafund.Crypto,
		Purchased: monday,
		Leverage:  1,
	})
	if err != nil {
		t.Fatalf("AddTrade() error = %v", err)
	}
	return p
}

func TestRenderHistory(t *testing.T) {
	p := testPortfolio(t)
	table, err := p.Valuation(context.Background())
	if err != nil {
		t.Fatalf("Valuation() error = %v", err)
	}

	out := RenderHistory(NewHistory("alpha", table, "USD"))

	for _, want := range []string{
		"# Valuation History for alpha",
		"| Date | BTC | Cash | Total | Return |",
		"| 2022-02-21 | $500.00 | $99,500.00 | $100,000.00 |",
		"| 2022-02-26 | $600.00 | $99,500.00 | $100,100.00 | +0.10% |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderHistory() missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderAllocation(t *testing.T) {
	p := testPortfolio(t)
	a, err := p.Allocation(context.Background())
	if err != nil {
		t.Fatalf("Allocation() error = %v", err)
	}

	out := RenderAllocation(NewAllocation("alpha", a))

	for _, want := range []string{
		"# Allocation for alpha on 2022-02-26",
		"| BTC | 10 | $600.00 |",
		"| Cash | | $99,500.00 |",
		"**Total: $100,100.00**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderAllocation() missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	p := testPortfolio(t)
	ctx := context.Background()
	table, err := p.Valuation(ctx)
	if err != nil {
		t.Fatalf("Valuation() error = %v", err)
	}
	liquidation, err := p.Liquidate(ctx)
	if err != nil {
		t.Fatalf("Liquidate() error = %v", err)
	}
	positions, err := p.Positions(ctx)
	if err != nil {
		t.Fatalf("Positions() error = %v", err)
	}

	out := RenderSummary(NewSummary("alpha", table, p.InitialCash(), liquidation, positions))

	for _, want := range []string{
		"# Portfolio Summary for alpha",
		"| Last settled day | 2022-02-26 |",
		"| Total value | $100,100.00 |",
		"| Return since start | +0.10% |",
		"| Liquidation value | $100,100.00 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSummary() missing %q in:\n%s", want, out)
		}
	}
	// The feed stops one day before the as-of date, so BTC lags.
	if !strings.Contains(out, "Market data is lagging for: BTC.") {
		t.Errorf("RenderSummary() should report lagging data for BTC:\n%s", out)
	}
}
