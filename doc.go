// Package taxlot implements a tax lot accounting engine for a single
// fungible asset. It tracks every acquisition as an individual lot with its
// own cost basis, consumes lots against disposals under a selectable
// strategy (FIFO, LIFO, HIFO or specific identification), and derives
// capital gains, holding-period classification and period-level tax
// summaries from the resulting events.
//
// The core functionalities include:
//   - Lot Ledger: the authoritative, single-writer collection of acquisition
//     lots, with strategy-driven consumption, integrity validation, and
//     copies on every read so callers never alias live state.
//   - Tax Period Calculator: filters a transaction stream to a tax year,
//     separates taxable acquisitions from custody movements, replays
//     disposal requests, and aggregates the period report.
//   - Simulation: what-if disposals on a deep clone of the ledger, never
//     touching live state.
//   - Data Persistence: encoding and decoding of lots, transactions and
//     disposal requests to and from human-readable JSONL streams.
//
// This package serves as the foundational logic for the `tlt` command-line
// tool; it performs no network or file I/O of its own.
package taxlot
