// Package alphafund reconstructs a unified daily valuation time series for
// a portfolio of trades opened at different times with different leverage,
// direction, and asset-type characteristics.
//
// The core pipeline is:
//   - a MarketDataSource supplies raw daily closing prices per ticker,
//     possibly with missing calendar days;
//   - each raw series is resampled to one value per calendar day by
//     carrying the last known price forward;
//   - each Position derives its own daily valuation series from its
//     purchase price, quantity, leverage, and long/short direction;
//   - the CashLedger derives the daily uninvested-cash balance implied by
//     purchase costs;
//   - the Portfolio merges every valuation series with the cash series
//     into a single date-aligned Table, one column per asset plus cash and
//     a sum column, with no missing values in its range.
//
// All computations are driven by an explicit "as of" date: there is no
// hidden clock, which keeps every valuation deterministic and testable.
// Fetching market data is the only latency-bound step; it happens behind
// the MarketDataSource interface, never inside the valuation math.
package alphafund
