package taxlot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// MarshalJSON implements the json.Marshaler interface for DisposalRequest,
// with a stable field order.
func (r DisposalRequest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.On)
	w.Append("quantity", r.Quantity)
	if !r.Price.IsZero() {
		w.PrefixFrom("price", r.Price)
	}
	if !r.Proceeds.IsZero() {
		w.EmbedFrom(r.Proceeds)
	}
	if !r.Fee.IsZero() {
		w.PrefixFrom("fee", r.Fee)
	}
	w.Optional("venue", r.Venue)
	w.Optional("notes", r.Notes)
	w.Optional("lots", r.LotIDs)
	return w.MarshalJSON()
}

// DecodeDisposals reads a JSONL stream of disposal requests, in the order
// they are meant to be replayed.
func DecodeDisposals(r io.Reader) ([]DisposalRequest, error) {
	var requests []DisposalRequest
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue // Skip empty lines
		}
		var temp struct {
			Date          Date            `json:"date"`
			Quantity      Quantity        `json:"quantity"`
			PriceAmount   decimal.Decimal `json:"priceAmount"`
			PriceCurrency string          `json:"priceCurrency"`
			Amount        decimal.Decimal `json:"amount"`
			Currency      string          `json:"currency"`
			FeeAmount     decimal.Decimal `json:"feeAmount"`
			FeeCurrency   string          `json:"feeCurrency"`
			Venue         string          `json:"venue"`
			Notes         string          `json:"notes"`
			Lots          []string        `json:"lots"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("could not parse disposal line %q: %w", string(line), err)
		}
		cur := temp.Currency
		if cur == "" {
			cur = defaultCurrency
		}
		priceCur := temp.PriceCurrency
		if priceCur == "" {
			priceCur = cur
		}
		feeCur := temp.FeeCurrency
		if feeCur == "" {
			feeCur = cur
		}
		requests = append(requests, DisposalRequest{
			On:       temp.Date,
			Quantity: temp.Quantity,
			Price:    M(temp.PriceAmount, priceCur),
			Proceeds: M(temp.Amount, cur),
			Fee:      M(temp.FeeAmount, feeCur),
			Venue:    temp.Venue,
			Notes:    temp.Notes,
			LotIDs:   temp.Lots,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return requests, nil
}

// EncodeDisposal marshals a single disposal request to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeDisposal(w io.Writer, req DisposalRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal disposal request: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write disposal request: %w", err)
	}
	return nil
}
