package alphafund

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alphafund/alphafund/date"
	"github.com/shopspring/decimal"
)

// This file implements the spreadsheet import format. Fund trade lists
// usually start life in a sheet with one row per trade; this reader turns
// such an export into trade records.
//
// Expected header (case-insensitive, extra columns ignored):
//
//	Ticker,Quantity,Asset,Purchased,Sold,Leverage,Short
//
// Asset, Sold, Leverage and Short are optional columns: they default to
// equity, still-open, 1 and long. A "BUY/SELL" column from older sheets
// is accepted as an alias for Short (SELL means short).

// ImportTrades reads trade rows from CSV data. The as-of date resolves
// and validates open positions; any invalid row aborts the import, a
// portfolio cannot silently drop a trade.
func ImportTrades(r io.Reader, asOf date.Date) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	col := make(map[string]int)
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["ticker"]; !ok {
		return nil, fmt.Errorf("CSV header has no %q column", "Ticker")
	}
	if _, ok := col["quantity"]; !ok {
		return nil, fmt.Errorf("CSV header has no %q column", "Quantity")
	}
	if _, ok := col["purchased"]; !ok {
		return nil, fmt.Errorf("CSV header has no %q column", "Purchased")
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var trades []Trade
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV line %d: %w", line, err)
		}

		quantity, err := decimal.NewFromString(field(record, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q: %w", line, field(record, "quantity"), err)
		}

		asset := Equity
		if s := field(record, "asset"); s != "" {
			if asset, err = ParseAssetType(s); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		leverage := 0.0
		if s := field(record, "leverage"); s != "" {
			if leverage, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("line %d: invalid leverage %q: %w", line, s, err)
			}
		}

		short := false
		if s := field(record, "short"); s != "" {
			if short, err = strconv.ParseBool(s); err != nil {
				return nil, fmt.Errorf("line %d: invalid short flag %q: %w", line, s, err)
			}
		} else if s := field(record, "buy/sell"); s != "" {
			short = strings.EqualFold(s, "SELL")
		}

		t, err := NewTrade(field(record, "ticker"), quantity, asset,
			field(record, "purchased"), field(record, "sold"), leverage, short, asOf)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}
