package alphafund

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alphafund/alphafund/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file implements the trade book format: a JSONL file where each
// line is one trade record. It stays human readable, single file, and
// trivial to append to.

// jtrade is the wire form of a Trade. The sale date is a pointer so an
// open position simply omits the field.
type jtrade struct {
	Ticker    string          `json:"ticker"`
	Quantity  decimal.Decimal `json:"quantity"`
	Asset     AssetType       `json:"asset"`
	Purchased date.Date       `json:"purchased"`
	Sold      *date.Date      `json:"sold,omitempty"`
	Leverage  float64         `json:"leverage,omitempty"`
	Short     bool            `json:"short,omitempty"`
}

// DecodeTrades reads trade records from a stream of JSONL data. Records
// are returned in file order; validation happens when they are added to a
// portfolio, where the as-of date is known.
func DecodeTrades(r io.Reader) ([]Trade, error) {
	var trades []Trade
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var jt jtrade
		if err := json.Unmarshal([]byte(text), &jt); err != nil {
			return nil, fmt.Errorf("cannot parse trade on line %d: %q: %w", line, text, err)
		}
		t := Trade{
			Ticker:    jt.Ticker,
			Quantity:  jt.Quantity,
			Asset:     jt.Asset,
			Purchased: jt.Purchased,
			Leverage:  jt.Leverage,
			Short:     jt.Short,
		}
		if jt.Sold != nil {
			t.Sold = *jt.Sold
		}
		if t.Leverage == 0 {
			t.Leverage = 1
		}
		trades = append(trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read trade book: %w", err)
	}
	return trades, nil
}

// EncodeTrade appends a single trade record as one JSONL line.
func EncodeTrade(w io.Writer, t Trade) error {
	jt := jtrade{
		Ticker:    t.Ticker,
		Quantity:  t.Quantity,
		Asset:     t.Asset,
		Purchased: t.Purchased,
		Leverage:  t.Leverage,
		Short:     t.Short,
	}
	if !t.Sold.IsZero() {
		sold := t.Sold
		jt.Sold = &sold
	}
	if jt.Leverage == 1 {
		jt.Leverage = 0 // the default, keep the line short
	}
	data, err := json.Marshal(jt)
	if err != nil {
		return fmt.Errorf("cannot marshal trade %q: %w", t.Ticker, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write trade book: %w", err)
	}
	return nil
}

// EncodeTrades writes all trade records in order.
func EncodeTrades(w io.Writer, trades []Trade) error {
	for _, t := range trades {
		if err := EncodeTrade(w, t); err != nil {
			return err
		}
	}
	return nil
}
