package alphafund

import (
	"encoding/json"
	"fmt"

	"github.com/alphafund/alphafund/date"
)

// AssetType classifies an asset by its trading calendar and conventions.
type AssetType int

const (
	// Equity trades on weekday sessions only.
	Equity AssetType = iota
	// Forex quotes every calendar day.
	Forex
	// Crypto trades around the clock, every calendar day.
	Crypto
)

func (a AssetType) String() string {
	switch a {
	case Equity:
		return "equity"
	case Forex:
		return "fx"
	case Crypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// ParseAssetType parses a string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch s {
	case "equity", "stock", "etf":
		return Equity, nil
	case "fx", "forex":
		return Forex, nil
	case "crypto":
		return Crypto, nil
	default:
		return 0, fmt.Errorf("unknown asset type: %q", s)
	}
}

func (a AssetType) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

func (a *AssetType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseAssetType(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Calendar is the trading calendar rule for an asset type. It decides on
// which calendar days a position can be exited or valued directly.
type Calendar struct {
	// WeekdaysOnly restricts trading to Monday through Friday.
	WeekdaysOnly bool
}

// Open reports whether the market trades on the given day.
func (c Calendar) Open(on date.Date) bool {
	if c.WeekdaysOnly {
		return !on.IsWeekend()
	}
	return true
}

// Calendars maps each asset type to its trading calendar. The zero entry
// (trade every day) applies to unknown types. It is a package variable so
// a deployment can relax or tighten the rule without touching validation.
var Calendars = map[AssetType]Calendar{
	Equity: {WeekdaysOnly: true},
	Forex:  {},
	Crypto: {},
}

// Calendar returns the trading calendar for the asset type.
func (a AssetType) Calendar() Calendar { return Calendars[a] }
