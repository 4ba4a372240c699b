package alphafund

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/alphafund/alphafund/date"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestWithRetryEventuallySucceeds(t *testing.T) {
	calls := 0
	flaky := FetchFunc(func(_ context.Context, ticker string, over date.Range) (*date.History[float64], error) {
		calls++
		if calls < 3 {
			return nil, fmt.Errorf("%w: remote hiccup", ErrDataUnavailable)
		}
		return prices(over.From, 50), nil
	})

	src := WithRetry(flaky, 5, time.Millisecond, quietLogger())
	h, err := src.Fetch(context.Background(), "X", date.NewRange(monday, monday))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d want 3", calls)
	}
	if h.Len() != 1 {
		t.Errorf("history length = %d want 1", h.Len())
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	down := FetchFunc(func(context.Context, string, date.Range) (*date.History[float64], error) {
		calls++
		return nil, fmt.Errorf("%w: down", ErrDataUnavailable)
	})

	src := WithRetry(down, 3, time.Millisecond, quietLogger())
	_, err := src.Fetch(context.Background(), "X", date.NewRange(monday, monday))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("Fetch() error = %v want %v", err, ErrDataUnavailable)
	}
	if calls != 3 {
		t.Errorf("calls = %d want 3", calls)
	}
}

func TestWithRetrySkipsPermanentErrors(t *testing.T) {
	calls := 0
	broken := FetchFunc(func(context.Context, string, date.Range) (*date.History[float64], error) {
		calls++
		return nil, errors.New("malformed response")
	})

	src := WithRetry(broken, 3, time.Millisecond, quietLogger())
	if _, err := src.Fetch(context.Background(), "X", date.NewRange(monday, monday)); err == nil {
		t.Fatal("Fetch() error = nil, want failure")
	}
	if calls != 1 {
		t.Errorf("calls = %d want 1 (no retry on permanent failure)", calls)
	}
}

func TestWithRetryClampsAttempts(t *testing.T) {
	for _, attempts := range []int{0, -1} {
		calls := 0
		down := FetchFunc(func(context.Context, string, date.Range) (*date.History[float64], error) {
			calls++
			return nil, fmt.Errorf("%w: down", ErrDataUnavailable)
		})

		src := WithRetry(down, attempts, time.Millisecond, quietLogger())
		_, err := src.Fetch(context.Background(), "X", date.NewRange(monday, monday))
		if !errors.Is(err, ErrDataUnavailable) {
			t.Fatalf("attempts=%d: Fetch() error = %v want %v", attempts, err, ErrDataUnavailable)
		}
		if calls != 1 {
			t.Errorf("attempts=%d: calls = %d want 1 (single try, no endless retry)", attempts, calls)
		}
	}
}

func TestWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	down := FetchFunc(func(context.Context, string, date.Range) (*date.History[float64], error) {
		return nil, fmt.Errorf("%w: down", ErrDataUnavailable)
	})
	src := WithRetry(down, 3, time.Hour, quietLogger())
	_, err := src.Fetch(ctx, "X", date.NewRange(monday, monday))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v want %v", err, context.Canceled)
	}
}

func TestFetchAllAlignsResults(t *testing.T) {
	source := staticSource{
		"A": prices(monday, 1),
		"B": prices(monday, 2),
		"C": prices(monday, 3),
	}
	reqs := []priceRequest{
		{"C", date.NewRange(monday, monday)},
		{"A", date.NewRange(monday, monday)},
		{"B", date.NewRange(monday, monday)},
	}
	results, err := fetchAll(context.Background(), source, reqs)
	if err != nil {
		t.Fatalf("fetchAll() error = %v", err)
	}
	for i, want := range []float64{3, 1, 2} {
		if _, v := results[i].Latest(); v != want {
			t.Errorf("results[%d] = %v want %v", i, v, want)
		}
	}
}

func TestFetchAllFailsWhole(t *testing.T) {
	source := staticSource{"A": prices(monday, 1)}
	reqs := []priceRequest{
		{"A", date.NewRange(monday, monday)},
		{"MISSING", date.NewRange(monday, monday)},
	}
	_, err := fetchAll(context.Background(), source, reqs)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("fetchAll() error = %v want %v", err, ErrDataUnavailable)
	}
}
