package date

import (
	"testing"
	"time"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
}

func TestAppendOverwrites(t *testing.T) {
	h := new(History[float64])
	d := New(2025, time.March, 3)
	h.Append(d, 1.0)
	h.Append(d, 2.0)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d want 1", h.Len())
	}
	if v, _ := h.Get(d); v != 2.0 {
		t.Errorf("Get() = %v want 2.0, last append must win", v)
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2022, time.February, 24), 50)
	h.Append(New(2022, time.February, 28), 55)

	if _, ok := h.ValueAsOf(New(2022, time.February, 23)); ok {
		t.Error("ValueAsOf before first entry should report false")
	}
	if v, ok := h.ValueAsOf(New(2022, time.February, 24)); !ok || v != 50 {
		t.Errorf("ValueAsOf(first day) = %v, %v want 50, true", v, ok)
	}
	// a weekend gap: the friday value carries
	if v, ok := h.ValueAsOf(New(2022, time.February, 26)); !ok || v != 50 {
		t.Errorf("ValueAsOf(gap day) = %v, %v want 50, true", v, ok)
	}
	if v, ok := h.ValueAsOf(New(2022, time.March, 15)); !ok || v != 55 {
		t.Errorf("ValueAsOf(after last) = %v, %v want 55, true", v, ok)
	}
}

func TestForwardFill(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2022, time.February, 24), 50) // Thursday
	h.Append(New(2022, time.February, 25), 51) // Friday
	h.Append(New(2022, time.February, 28), 60) // Monday; weekend missing

	r := NewRange(New(2022, time.February, 24), New(2022, time.March, 1))
	dense, err := ForwardFill(h, r)
	if err != nil {
		t.Fatalf("ForwardFill() error = %v", err)
	}
	if dense.Len() != r.Len() {
		t.Fatalf("ForwardFill().Len() = %d want %d", dense.Len(), r.Len())
	}
	if !dense.Gapless() {
		t.Fatal("ForwardFill() result has gaps")
	}

	wants := []struct {
		on   Date
		want float64
	}{
		{New(2022, time.February, 24), 50},
		{New(2022, time.February, 25), 51},
		{New(2022, time.February, 26), 51}, // Saturday carries Friday close
		{New(2022, time.February, 27), 51}, // Sunday too
		{New(2022, time.February, 28), 60},
		{New(2022, time.March, 1), 60}, // trailing day carries last close
	}
	for _, tc := range wants {
		if v, ok := dense.Get(tc.on); !ok || v != tc.want {
			t.Errorf("dense.Get(%s) = %v, %v want %v, true", tc.on, v, ok, tc.want)
		}
	}
}

// Forward filling an already gap-free series must return it unchanged.
func TestForwardFillIdempotent(t *testing.T) {
	h := new(History[float64])
	from := New(2022, time.February, 24)
	for i := 0; i < 6; i++ {
		h.Append(from.Add(i), float64(100+i))
	}
	r, _ := h.Range()

	once, err := ForwardFill(h, r)
	if err != nil {
		t.Fatalf("ForwardFill() error = %v", err)
	}
	twice, err := ForwardFill(once, r)
	if err != nil {
		t.Fatalf("ForwardFill(ForwardFill()) error = %v", err)
	}
	if once.Len() != h.Len() || twice.Len() != h.Len() {
		t.Fatalf("lengths diverged: %d, %d, %d", h.Len(), once.Len(), twice.Len())
	}
	for on, want := range h.Values() {
		if v, _ := once.Get(on); v != want {
			t.Errorf("once.Get(%s) = %v want %v", on, v, want)
		}
		if v, _ := twice.Get(on); v != want {
			t.Errorf("twice.Get(%s) = %v want %v", on, v, want)
		}
	}
}

func TestForwardFillNoStartValue(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2022, time.March, 1), 50)
	r := NewRange(New(2022, time.February, 24), New(2022, time.March, 1))
	if _, err := ForwardFill(h, r); err == nil {
		t.Fatal("ForwardFill() with no value on range start should fail")
	}
}

func TestGapless(t *testing.T) {
	h := new(History[float64])
	if !h.Gapless() {
		t.Error("empty history is gapless")
	}
	h.Append(New(2022, time.March, 1), 1)
	h.Append(New(2022, time.March, 2), 1)
	if !h.Gapless() {
		t.Error("contiguous history reported as gappy")
	}
	h.Append(New(2022, time.March, 4), 1)
	if h.Gapless() {
		t.Error("gappy history reported as gapless")
	}
}
