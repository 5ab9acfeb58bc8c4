// Package t212 computes retrospective statistics on the order history of a
// Trading 212 account.
//
// The core functionalities include:
//   - Orders: decoding the brokerage order records, and normalizing them
//     (bare ticker symbol, cost, quantity and average price per share) with
//     zero defaults for the fields that unfilled orders do not carry.
//   - Book: a stateless engine over the normalized orders that computes, on
//     demand and for a Filter (date range and tickers), the holdings rollup,
//     the daily, periodic and hourly activity, the cumulative investment,
//     the per stock detail and summary statistics.
//   - Session: a cache of the Book of a Source (the live API, a file, or the
//     embedded sample) with explicit invalidation.
//   - Export: csv and json exports of the normalized order table.
//
// The live API client is in the trading212 package, and the display mapping
// in the renderer package. This package serves as the foundational logic for
// the `tdash` command-line tool.
package t212
