package taxlot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MarshalJSON implements the json.Marshaler interface for Lot, with a stable
// field order. The cost basis is persisted with all its digits so that a
// round trip through this form is exact.
func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.ID)
	w.Append("date", l.PurchaseDate)
	w.Optional("ref", l.Ref)
	w.Optional("venue", l.Venue)
	w.Append("quantity", l.Original)
	w.Append("remaining", l.Remaining)
	w.EmbedFrom(l.Cost.exact())
	return w.MarshalJSON()
}

// DecodeLots reads a JSONL lot snapshot and rebuilds a ledger. Purchase
// dates are re-hydrated from their ISO form, and the id counter is restored
// from the maximum numeric suffix of the loaded ids, so lots created
// afterwards never collide with restored ones.
func DecodeLots(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue // Skip empty lines
		}
		var temp struct {
			ID        string          `json:"id"`
			Date      Date            `json:"date"`
			Ref       string          `json:"ref"`
			Venue     string          `json:"venue"`
			Quantity  Quantity        `json:"quantity"`
			Remaining Quantity        `json:"remaining"`
			Amount    decimal.Decimal `json:"amount"`
			Currency  string          `json:"currency"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("could not parse lot line %q: %w", string(line), err)
		}
		cur := temp.Currency
		if cur == "" {
			cur = defaultCurrency
		}
		ledger.lots = append(ledger.lots, &Lot{
			ID:           temp.ID,
			Ref:          temp.Ref,
			PurchaseDate: temp.Date,
			Original:     temp.Quantity,
			Remaining:    temp.Remaining,
			Cost:         M(temp.Amount, cur),
			Venue:        temp.Venue,
		})
		if n, ok := lotNumber(temp.ID); ok && n > ledger.counter {
			ledger.counter = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}

// EncodeLot marshals a single lot to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeLot(w io.Writer, lot Lot) error {
	jsonData, err := json.Marshal(lot)
	if err != nil {
		return fmt.Errorf("failed to marshal lot: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write lot: %w", err)
	}
	return nil
}

// EncodeLots persists all lots, consumed and remaining alike, to an
// io.Writer in JSONL format, in insertion order. Insertion order is what
// breaks same-day ties during consumption, so it is part of the state.
func EncodeLots(w io.Writer, ledger *Ledger) error {
	for _, lot := range ledger.Lots() {
		if err := EncodeLot(w, lot); err != nil {
			return err
		}
	}
	return nil
}

// lotNumber extracts the numeric suffix of a "lot-<n>" identifier.
func lotNumber(id string) (int, bool) {
	s, ok := strings.CutPrefix(id, "lot-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
