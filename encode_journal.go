package taxlot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// The journal and the lot snapshot are persisted as JSONL: one record per
// line, stable key order, ISO dates, plain decimal numbers. The format is
// human-readable and git-friendly.

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// defaultCurrency is assumed when a line carries an amount without a
// currency code.
const defaultCurrency = "USD"

// MarshalJSON implements the json.Marshaler interface for Transaction, with
// a stable field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("date", t.On)
	w.Optional("id", t.ID)
	w.Optional("venue", t.Venue)
	w.Append("quantity", t.Quantity)
	if !t.Price.IsZero() {
		w.PrefixFrom("price", t.Price)
	}
	if !t.Amount.IsZero() {
		w.EmbedFrom(t.Amount)
	}
	w.Optional("selfCustody", t.SelfCustody)
	w.Optional("nonTaxable", t.NonTaxable)
	w.Optional("destination", t.Destination)
	w.Optional("notes", t.Notes)
	return w.MarshalJSON()
}

// txLine is a specialized struct to read a transaction line with its flat
// monetary fields.
type txLine struct {
	Type          string          `json:"type"`
	Date          Date            `json:"date"`
	ID            string          `json:"id"`
	Venue         string          `json:"venue"`
	Quantity      Quantity        `json:"quantity"`
	PriceAmount   decimal.Decimal `json:"priceAmount"`
	PriceCurrency string          `json:"priceCurrency"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	SelfCustody   bool            `json:"selfCustody"`
	NonTaxable    bool            `json:"nonTaxable"`
	Destination   string          `json:"destination"`
	Notes         string          `json:"notes"`
}

func (l txLine) transaction() Transaction {
	cur := l.Currency
	if cur == "" {
		cur = defaultCurrency
	}
	priceCur := l.PriceCurrency
	if priceCur == "" {
		priceCur = cur
	}
	return Transaction{
		ID:          l.ID,
		On:          l.Date,
		Type:        l.Type,
		Venue:       l.Venue,
		Quantity:    l.Quantity,
		Price:       M(l.PriceAmount, priceCur),
		Amount:      M(l.Amount, cur),
		SelfCustody: l.SelfCustody,
		NonTaxable:  l.NonTaxable,
		Destination: l.Destination,
		Notes:       l.Notes,
	}
}

// DecodeJournal decodes transactions from a stream of JSONL data and returns
// a journal sorted by date.
func DecodeJournal(r io.Reader) (*Journal, error) {
	journal := NewJournal()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue // Skip empty lines
		}
		var temp txLine
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("could not parse transaction line %q: %w", string(line), err)
		}
		journal.Append(temp.transaction())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	journal.stableSort()
	return journal, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	jsonData, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeJournal reorders transactions by date and persists them to an
// io.Writer in JSONL format. The sort is stable: transactions on the same
// day keep their original relative order.
func EncodeJournal(w io.Writer, journal *Journal) error {
	journal.stableSort()
	for _, tx := range journal.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
