package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

func tempBook(t *testing.T) {
	t.Helper()
	old := *bookFile
	*bookFile = filepath.Join(t.TempDir(), "trades.jsonl")
	t.Cleanup(func() { *bookFile = old })
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return cmd.Execute(context.Background(), f)
}

func TestAddAppendsToBook(t *testing.T) {
	tempBook(t)

	status := run(t, &addCmd{}, "-t", "AAPL.US", "-q", "10", "-p", "2024-03-04")
	if status != subcommands.ExitSuccess {
		t.Fatalf("add exited %v", status)
	}
	status = run(t, &addCmd{}, "-t", "BTC-USD.CC", "-q", "0.5", "-a", "crypto", "-p", "2024-03-04")
	if status != subcommands.ExitSuccess {
		t.Fatalf("second add exited %v", status)
	}

	trades, err := DecodeTradeBook()
	if err != nil {
		t.Fatalf("DecodeTradeBook() error = %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("decoded %d trades want 2", len(trades))
	}
	if trades[0].Ticker != "AAPL.US" || trades[1].Ticker != "BTC-USD.CC" {
		t.Errorf("tickers = %s, %s", trades[0].Ticker, trades[1].Ticker)
	}
}

func TestAddRejectsInvalidTrade(t *testing.T) {
	tempBook(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no ticker", []string{"-q", "10", "-p", "2024-03-04"}},
		{"bad quantity", []string{"-t", "X", "-q", "lots", "-p", "2024-03-04"}},
		{"negative quantity", []string{"-t", "X", "-q", "-10", "-p", "2024-03-04"}},
		{"bad date", []string{"-t", "X", "-q", "10", "-p", "soon"}},
		{"bad asset", []string{"-t", "X", "-q", "10", "-a", "bond", "-p", "2024-03-04"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if status := run(t, &addCmd{}, tc.args...); status != subcommands.ExitUsageError {
				t.Errorf("add exited %v want usage error", status)
			}
		})
	}

	trades, err := DecodeTradeBook()
	if err != nil {
		t.Fatalf("DecodeTradeBook() error = %v", err)
	}
	if len(trades) != 0 {
		t.Errorf("invalid trades were appended: %d", len(trades))
	}
}

func TestDecodeTradeBookMissingFile(t *testing.T) {
	tempBook(t)
	trades, err := DecodeTradeBook()
	if err != nil {
		t.Fatalf("DecodeTradeBook() error = %v", err)
	}
	if trades != nil {
		t.Errorf("missing book should decode as empty, got %d trades", len(trades))
	}
}
