// Package ccpl computes the realized profit and loss of a Coincheck account.
//
// The package replays a chronologically ordered stream of asset events
// (trades, purchases, sales, currency exchanges, outbound sends and inbound
// deposits) through a per-asset position ledger that maintains the held
// quantity and the weighted-average acquisition cost in JPY. Every event
// that disposes of an asset produces a realized profit or loss line.
//
// Reading the Coincheck CSV exports (package coincheck), fetching historical
// closing prices (the PriceOracle interface, implemented by
// coincheck.Client) and rendering the resulting report (package renderer)
// are collaborators, not part of the core.
package ccpl
