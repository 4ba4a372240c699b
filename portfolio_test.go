package alphafund

import (
	"context"
	"errors"
	"testing"

	"github.com/alphafund/alphafund/date"
)

func TestPortfolioValue(t *testing.T) {
	// 100000 initial cash, one trade: 10 units of X bought at 50 on day 0,
	// last published price 60 on day 5. Valuation 600, cash 99500.
	source := staticSource{"X": prices(monday, 50, 52, 54, 56, 58, 60)}
	p := NewPortfolio(M(100000, "USD"), monday.Add(6), source)
	if err := p.AddTrade(newTrade(t, "X", 10, monday, date.Date{})); err != nil {
		t.Fatalf("AddTrade() error = %v", err)
	}

	value, err := p.Value(context.Background())
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if value != 100100 {
		t.Errorf("Value() = %v want 100100", value)
	}

	liquidate, err := p.Liquidate(context.Background())
	if err != nil {
		t.Fatalf("Liquidate() error = %v", err)
	}
	if !liquidate.Equal(M(100100, "USD")) {
		t.Errorf("Liquidate() = %s want $100,100.00", liquidate)
	}
}

func TestPortfolioAddTradeInvalidatesCache(t *testing.T) {
	source := staticSource{
		"X": prices(monday, 50, 52, 54, 56, 58, 60),
		"Y": prices(monday, 100, 102, 104, 106, 108, 110),
	}
	p := NewPortfolio(M(100000, "USD"), monday.Add(6), source)
	if err := p.AddTrade(newTrade(t, "X", 10, monday, date.Date{})); err != nil {
		t.Fatalf("AddTrade(X) error = %v", err)
	}

	before, err := p.Value(context.Background())
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	if err := p.AddTrade(newTrade(t, "Y", 1, monday, date.Date{})); err != nil {
		t.Fatalf("AddTrade(Y) error = %v", err)
	}
	after, err := p.Value(context.Background())
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	// Y: bought 1 at 100, worth 110; it costs 100 of cash. Net +10.
	if after != before+10 {
		t.Errorf("Value() after second trade = %v want %v", after, before+10)
	}
}

func TestPortfolioAddTradeRejectsInvalid(t *testing.T) {
	p := NewPortfolio(M(1000, "USD"), monday.Add(6), staticSource{})
	err := p.AddTrade(newTrade(t, "X", -1, monday, date.Date{}))
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("AddTrade() error = %v want %v", err, ErrInvalidQuantity)
	}
	if len(p.Trades()) != 0 {
		t.Errorf("invalid trade was appended")
	}
}

func TestPortfolioUnknownTicker(t *testing.T) {
	p := NewPortfolio(M(1000, "USD"), monday.Add(6), staticSource{})
	if err := p.AddTrade(newTrade(t, "NOPE", 1, monday, date.Date{})); err != nil {
		t.Fatalf("AddTrade() error = %v", err)
	}
	_, err := p.Value(context.Background())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Value() error = %v want %v", err, ErrDataUnavailable)
	}
}

func TestPortfolioAllocation(t *testing.T) {
	source := staticSource{
		"X": prices(monday, 50, 52, 54, 56, 58, 60),
		"Y": prices(monday, 100, 102, 104, 106, 108, 110),
	}
	p := NewPortfolio(M(100000, "USD"), monday.Add(6), source)
	if err := p.AddTrade(newTrade(t, "X", 10, monday, date.Date{})); err != nil {
		t.Fatal(err)
	}
	if err := p.AddTrade(newTrade(t, "Y", 1, monday, date.Date{})); err != nil {
		t.Fatal(err)
	}

	a, err := p.Allocation(context.Background())
	if err != nil {
		t.Fatalf("Allocation() error = %v", err)
	}
	if a.Date != monday.Add(5) {
		t.Errorf("Date = %s want %s", a.Date, monday.Add(5))
	}
	if !a.Total.Equal(M(100110, "USD")) {
		t.Errorf("Total = %s want $100,110.00", a.Total)
	}
	if !a.Cash.Equal(M(99400, "USD")) {
		t.Errorf("Cash = %s want $99,400.00", a.Cash)
	}
	if len(a.Holdings) != 2 {
		t.Fatalf("len(Holdings) = %d want 2", len(a.Holdings))
	}
	x := a.Holdings[0] // tickers are sorted
	if x.Ticker != "X" || !x.Value.Equal(M(600, "USD")) {
		t.Errorf("Holdings[0] = %+v want X at $600.00", x)
	}
	if !x.Weight.Equal(PercentOf(600.0 / 100110)) {
		t.Errorf("X weight = %s want %s", x.Weight, PercentOf(600.0/100110))
	}
	if !x.Quantity.Equal(qty(10)) {
		t.Errorf("X quantity = %s want 10", x.Quantity)
	}
}

func TestPortfolioEmpty(t *testing.T) {
	p := NewPortfolio(M(1000, "USD"), monday, staticSource{})
	value, err := p.Value(context.Background())
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if value != 0 {
		t.Errorf("Value() = %v want 0 (no settled day)", value)
	}
	liquidate, err := p.Liquidate(context.Background())
	if err != nil {
		t.Fatalf("Liquidate() error = %v", err)
	}
	if !liquidate.Equal(M(1000, "USD")) {
		t.Errorf("Liquidate() = %s want initial cash", liquidate)
	}
}
