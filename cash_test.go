package alphafund

import (
	"testing"

	"github.com/alphafund/alphafund/date"
)

func mustPosition(t *testing.T, trade Trade, raw *date.History[float64], asOf date.Date) *Position {
	t.Helper()
	pos, err := NewPosition(trade, raw, asOf)
	if err != nil {
		t.Fatalf("NewPosition(%s) error = %v", trade.Ticker, err)
	}
	return pos
}

func TestCashLedgerSinglePosition(t *testing.T) {
	// initial 100000, one position costing 500, still open.
	asOf := monday.Add(6)
	raw := prices(monday, 50, 52, 54, 56, 58, 60)
	pos := mustPosition(t, newTrade(t, "X", 10, monday, date.Date{}), raw, asOf)

	ledger := NewCashLedger(100000, []*Position{pos}, asOf)

	r, ok := ledger.History().Range()
	if !ok {
		t.Fatal("cash history is empty")
	}
	if r.From != monday || r.To != asOf.Add(-1) {
		t.Fatalf("cash range = %s want [%s, %s]", r, monday, asOf.Add(-1))
	}
	if !ledger.History().Gapless() {
		t.Error("cash history has gaps")
	}
	for on := range r.Days() {
		if v, _ := ledger.Balance(on); v != 99500 {
			t.Errorf("Balance(%s) = %v want 99500", on, v)
		}
	}
	if _, ok := ledger.Balance(asOf); ok {
		t.Error("Balance(asOf) should not be settled")
	}
}

func TestCashLedgerStaggeredPurchases(t *testing.T) {
	asOf := monday.Add(6)
	first := mustPosition(t, newTrade(t, "X", 10, monday, date.Date{}),
		prices(monday, 50, 52, 54, 56, 58, 60), asOf) // cost 500
	second := mustPosition(t, newTrade(t, "Y", 2, monday.Add(2), date.Date{}),
		prices(monday.Add(2), 100, 101, 102, 103), asOf) // cost 200

	ledger := NewCashLedger(1000, []*Position{first, second}, asOf)

	tests := []struct {
		day  date.Date
		want float64
	}{
		{monday, 500},          // only X held
		{monday.Add(1), 500},   // still only X
		{monday.Add(2), 300},   // Y purchased
		{asOf.Add(-1), 300},    // both held through yesterday
	}
	for _, tc := range tests {
		if v, ok := ledger.Balance(tc.day); !ok || v != tc.want {
			t.Errorf("Balance(%s) = %v, %v want %v, true", tc.day, v, ok, tc.want)
		}
	}
}

func TestCashLedgerClosedPositionReleasesNothing(t *testing.T) {
	// A position sold before asOf keeps deducting through its sale day;
	// sale proceeds are out of scope, so the balance stays reduced only
	// while held.
	asOf := monday.Add(6)
	sold := monday.Add(2)
	pos := mustPosition(t, newTrade(t, "X", 10, monday, sold),
		prices(monday, 50, 52, 54), asOf)

	ledger := NewCashLedger(1000, []*Position{pos}, asOf)

	if v, _ := ledger.Balance(sold); v != 500 {
		t.Errorf("Balance(sale day) = %v want 500", v)
	}
	if v, _ := ledger.Balance(sold.Add(1)); v != 1000 {
		t.Errorf("Balance(after sale) = %v want 1000", v)
	}
}

func TestCashLedgerNoPositions(t *testing.T) {
	ledger := NewCashLedger(1000, nil, monday)
	if ledger.History().Len() != 0 {
		t.Errorf("History().Len() = %d want 0", ledger.History().Len())
	}
	if ledger.InitialCash() != 1000 {
		t.Errorf("InitialCash() = %v want 1000", ledger.InitialCash())
	}
}
