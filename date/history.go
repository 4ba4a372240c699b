package date

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Value is the set of value types a History can hold.
type Value interface{ float32 | float64 | string }

// History stores a chronological series of values, each associated with a
// specific date. It ensures that dates are unique and the series is always
// sorted.
type History[T Value] struct {
	days   []Date
	values []T
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// First returns the earliest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) First() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, *new(T)
	}
	return h.days[0], h.values[0]
}

// Clear removes all items from the history.
func (h *History[T]) Clear() {
	h.days = h.days[:0]
	h.values = h.values[:0]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological[T Value] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].time().Before(s.days[j].time()) }

func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History[T]) sort() { sort.Sort(chronological[T]{h}) }

// Append adds a point to the history.
//
// Existing value at that date is overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	if i := slices.Index(h.days, on); i >= 0 {
		// Found a point at that exact same day.
		// We choose to replace, because it gives higher priority to the last data.
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	h.sort()
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true, or the zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	var value T
	i := slices.Index(h.days, day)
	if i >= 0 {
		return h.values[i], true
	}
	return value, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
// It returns the value and true if found, otherwise the zero value and false.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})

	if found {
		return h.values[i], true
	}

	// Not found. `i` is the index where `day` would be inserted.
	// The value we want is at `i-1`, the last entry before the target date.
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Range returns the range covered by the history, from its first to its
// last day. It returns false if the history is empty.
func (h *History[T]) Range() (Range, bool) {
	if len(h.days) == 0 {
		return Range{}, false
	}
	return Range{From: h.days[0], To: h.days[len(h.days)-1]}, true
}

// Gapless reports whether the history covers every calendar day between
// its first and last entry.
func (h *History[T]) Gapless() bool {
	if len(h.days) == 0 {
		return true
	}
	return h.days[len(h.days)-1].Sub(h.days[0])+1 == len(h.days)
}

// ForwardFill resamples h to a fixed daily frequency over the range r:
// every calendar day of r gets one value, missing days carry the last
// known value forward. Some assets quote every calendar day while others
// skip weekends and holidays, so a dense daily series is the only index
// that all of them share.
//
// The input must define a value on r.From: forward filling cannot invent a
// value before the first observation. Forward filling an already gap-free
// history returns an equal history.
func ForwardFill[T Value](h *History[T], r Range) (*History[T], error) {
	if _, ok := h.ValueAsOf(r.From); !ok {
		return nil, fmt.Errorf("no value on or before %s, cannot forward-fill %s", r.From, r)
	}
	dense := &History[T]{
		days:   make([]Date, 0, r.Len()),
		values: make([]T, 0, r.Len()),
	}
	// days are generated in order, so append directly without re-sorting.
	for on := range r.Days() {
		v, _ := h.ValueAsOf(on)
		dense.days = append(dense.days, on)
		dense.values = append(dense.values, v)
	}
	return dense, nil
}
