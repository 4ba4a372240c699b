// Package cmd implements the CLI application to value a trade book.
package cmd

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/alphafund/alphafund"
	"github.com/alphafund/alphafund/date"
	"github.com/alphafund/alphafund/eodhd"
)

// Register registers every subcommand on the commander. A main package
// calls Register and then Execute on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&valueCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")

	c.Register(&addCmd{}, "trade book")
	c.Register(&importCmd{}, "trade book")

	c.Register(&updateCmd{}, "market data")
	c.Register(&quoteCmd{}, "market data")
	c.Register(&searchCmd{}, "market data")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// As a CLI application it has a very short lived lifecycle, so it is ok
// to use global variables.

var (
	bookFile = flag.String("book", "trades.jsonl", "Path to the trade book file (JSONL format)")
	initCash = flag.Float64("cash", 100000, "Initial cash amount the portfolio starts with")
	currency = flag.String("currency", "USD", "Currency of the initial cash")
	asOfFlag = flag.String("as-of", "", "Valuation date (YYYY-MM-DD), defaults to today")
	verbose  = flag.Bool("v", false, "Verbose logging")
)

// Log is the application logger. Subcommands log through it; -v raises
// the level to debug.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// asOf resolves the valuation date flag.
func asOf() (date.Date, error) {
	if *verbose {
		Log.SetLevel(logrus.DebugLevel)
	}
	if *asOfFlag == "" {
		return date.Today(), nil
	}
	on, err := date.Parse(*asOfFlag)
	if err != nil {
		return date.Date{}, fmt.Errorf("%w: -as-of: %v", alphafund.ErrInvalidDateFormat, err)
	}
	return on, nil
}

// dataClient builds the EODHD client. It is a variable so tests can
// point it at a local server.
var dataClient = func() *eodhd.Client {
	return eodhd.New("", eodhd.WithLogger(Log))
}

// marketData builds the application market data source: the EODHD
// client behind bounded retries, resolving each book ticker to its
// EODHD symbol from the trade's asset type.
func marketData(trades []alphafund.Trade) alphafund.MarketDataSource {
	source := eodhd.NewSource(dataClient(), trades)
	return alphafund.WithRetry(source, 3, time.Second, Log)
}

// DecodeTradeBook reads the trade book file. A missing file is an empty
// book, so every command works out of the box in a fresh directory.
func DecodeTradeBook() ([]alphafund.Trade, error) {
	f, err := os.Open(*bookFile)
	if err != nil {
		if os.IsNotExist(err) {
			Log.Debugf("trade book %q does not exist, starting empty", *bookFile)
			return nil, nil
		}
		return nil, fmt.Errorf("could not open trade book %q: %w", *bookFile, err)
	}
	defer f.Close()

	trades, err := alphafund.DecodeTrades(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode trade book %q: %w", *bookFile, err)
	}
	return trades, nil
}

// LoadPortfolio builds the portfolio from the trade book and the
// application flags. Every trade is validated on the way in.
func LoadPortfolio() (*alphafund.Portfolio, error) {
	on, err := asOf()
	if err != nil {
		return nil, err
	}
	trades, err := DecodeTradeBook()
	if err != nil {
		return nil, err
	}
	p := alphafund.NewPortfolio(alphafund.M(*initCash, *currency), on, marketData(trades))
	for _, t := range trades {
		if err := p.AddTrade(t); err != nil {
			return nil, fmt.Errorf("invalid trade in %q: %w", *bookFile, err)
		}
	}
	return p, nil
}

// AppendTrade appends a single trade record to the trade book file.
func AppendTrade(t alphafund.Trade) error {
	f, err := os.OpenFile(*bookFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fs.FileMode(0644))
	if err != nil {
		return fmt.Errorf("could not open trade book %q: %w", *bookFile, err)
	}
	defer f.Close()

	if err := alphafund.EncodeTrade(f, t); err != nil {
		return fmt.Errorf("could not write trade book %q: %w", *bookFile, err)
	}
	return nil
}
