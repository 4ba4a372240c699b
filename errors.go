package alphafund

import "errors"

// Sentinel errors for trade validation and valuation construction. They
// are always wrapped with the ticker and the dates involved, so callers
// match them with errors.Is and still get a diagnosable message.
var (
	// ErrInvalidDateFormat reports a date argument that is neither a
	// recognized date string nor a date value.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidDateRange reports a purchase date after the sale date.
	ErrInvalidDateRange = errors.New("purchase date after sale date")
	// ErrInvalidQuantity reports a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be strictly positive")
	// ErrInvalidLeverage reports a zero or negative leverage.
	ErrInvalidLeverage = errors.New("leverage must be strictly positive")
	// ErrClosedMarketDate reports a sale date on which the asset's market
	// does not trade (an equity exiting on a weekend).
	ErrClosedMarketDate = errors.New("market closed on sale date")
	// ErrEmptyPriceHistory reports a market data query that returned no
	// data points for the holding period.
	ErrEmptyPriceHistory = errors.New("empty price history")
	// ErrPurchaseDateUnavailable reports market data whose first day is
	// not the requested purchase date.
	ErrPurchaseDateUnavailable = errors.New("no price on purchase date")
	// ErrDataUnavailable reports an unknown ticker or an unreachable
	// market data source.
	ErrDataUnavailable = errors.New("market data unavailable")
)
