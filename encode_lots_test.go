package taxlot

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeLots(t *testing.T) {
	ledger := NewLedger()
	ledger.CreateLot(Acquisition{On: MustParse("2025-01-15"), Quantity: Q(0.02), Value: USD(1000), Ref: "t1", Venue: "coinbase"})
	ledger.CreateLot(Acquisition{On: MustParse("2025-02-15"), Quantity: Q(0.04), Value: USD(2000)})
	if _, err := ledger.Consume(DisposalRequest{On: MustParse("2025-06-01"), Quantity: Q(0.01), Proceeds: USD(600)}, FIFO, 0); err != nil {
		t.Fatalf("Consume() returned an unexpected error: %v", err)
	}

	var buffer bytes.Buffer
	if err := EncodeLots(&buffer, ledger); err != nil {
		t.Fatalf("EncodeLots() returned an unexpected error: %v", err)
	}

	want := `{"id":"lot-1","date":"2025-01-15","ref":"t1","venue":"coinbase","quantity":0.02,"remaining":0.01,"currency":"USD","amount":1000}
{"id":"lot-2","date":"2025-02-15","quantity":0.04,"remaining":0.04,"currency":"USD","amount":2000}
`
	if got := buffer.String(); got != want {
		t.Errorf("EncodeLots() produced incorrect output.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestDecodeLots(t *testing.T) {
	jsonlStream := `
{"id":"lot-1","date":"2025-01-15","ref":"t1","venue":"coinbase","quantity":0.02,"remaining":0.01,"currency":"USD","amount":1000}

{"id":"lot-2","date":"2025-02-15","quantity":0.04,"remaining":0.04,"amount":2000}
`
	ledger, err := DecodeLots(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLots() returned an unexpected error: %v", err)
	}

	if got := ledger.Len(); got != 2 {
		t.Fatalf("DecodeLots() decoded %d lots, want 2", got)
	}

	lot1, ok := ledger.Lot("lot-1")
	if !ok {
		t.Fatal("Lot(lot-1) not found after decode")
	}
	if lot1.PurchaseDate != MustParse("2025-01-15") {
		t.Errorf("lot-1 date = %s, want 2025-01-15", lot1.PurchaseDate)
	}
	if lot1.Ref != "t1" || lot1.Venue != "coinbase" {
		t.Errorf("lot-1 ref/venue = %q/%q, want t1/coinbase", lot1.Ref, lot1.Venue)
	}
	if !lot1.Original.Equal(Q(0.02)) || !lot1.Remaining.Equal(Q(0.01)) {
		t.Errorf("lot-1 quantities = %s/%s, want 0.02/0.01", lot1.Original, lot1.Remaining)
	}
	if !lot1.Cost.Equal(USD(1000)) {
		t.Errorf("lot-1 cost = %s, want %s", lot1.Cost, USD(1000))
	}

	// The currency defaults to USD when the line omits it.
	lot2, _ := ledger.Lot("lot-2")
	if got := lot2.Cost.Currency(); got != "USD" {
		t.Errorf("lot-2 currency = %q, want USD", got)
	}
}

func TestDecodeLots_RestoresCounter(t *testing.T) {
	jsonlStream := `
{"id":"lot-3","date":"2025-01-15","quantity":0.02,"remaining":0.02,"currency":"USD","amount":1000}
{"id":"lot-7","date":"2025-02-15","quantity":0.04,"remaining":0.04,"currency":"USD","amount":2000}
{"id":"imported-abc","date":"2025-03-15","quantity":0.01,"remaining":0.01,"currency":"USD","amount":500}
`
	ledger, err := DecodeLots(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLots() returned an unexpected error: %v", err)
	}

	// The counter resumes past the maximum numeric suffix, so a new lot can
	// never collide with a restored one. Foreign ids are kept but do not
	// drive the counter.
	lot := ledger.CreateLot(Acquisition{On: MustParse("2025-04-15"), Quantity: Q(0.01), Value: USD(500)})
	if lot.ID != "lot-8" {
		t.Errorf("lot id after restore = %q, want %q", lot.ID, "lot-8")
	}
}

func TestDecodeLots_Roundtrip(t *testing.T) {
	ledger := setupLedger(t)
	if _, err := ledger.Consume(DisposalRequest{On: MustParse("2025-06-01"), Quantity: Q(0.05), Proceeds: USD(3000)}, HIFO, 0); err != nil {
		t.Fatalf("Consume() returned an unexpected error: %v", err)
	}

	var buffer bytes.Buffer
	if err := EncodeLots(&buffer, ledger); err != nil {
		t.Fatalf("EncodeLots() returned an unexpected error: %v", err)
	}
	back, err := DecodeLots(&buffer)
	if err != nil {
		t.Fatalf("DecodeLots() returned an unexpected error: %v", err)
	}

	if got, want := back.Len(), ledger.Len(); got != want {
		t.Fatalf("round trip lot count = %d, want %d", got, want)
	}
	for _, lot := range ledger.Lots() {
		dup, ok := back.Lot(lot.ID)
		if !ok {
			t.Fatalf("lot %s lost in round trip", lot.ID)
		}
		if !dup.Original.Equal(lot.Original) || !dup.Remaining.Equal(lot.Remaining) {
			t.Errorf("lot %s quantities = %s/%s, want %s/%s", lot.ID, dup.Original, dup.Remaining, lot.Original, lot.Remaining)
		}
		if !dup.Cost.Equal(lot.Cost) {
			t.Errorf("lot %s cost = %s, want %s", lot.ID, dup.Cost, lot.Cost)
		}
		if dup.PurchaseDate != lot.PurchaseDate {
			t.Errorf("lot %s date = %s, want %s", lot.ID, dup.PurchaseDate, lot.PurchaseDate)
		}
	}

	// Derived aggregates survive the round trip exactly.
	if got, want := back.RemainingCost(), ledger.RemainingCost(); !got.Equal(want) {
		t.Errorf("round trip RemainingCost() = %s, want %s", got, want)
	}
}

func TestDecodeLots_RejectsBadLine(t *testing.T) {
	_, err := DecodeLots(strings.NewReader(`{"id":"lot-1","date":"2025-01-15",`))
	if err == nil {
		t.Fatal("DecodeLots() expected an error for a truncated line, got nil")
	}
	if !strings.Contains(err.Error(), "lot-1") {
		t.Errorf("error %q does not quote the offending line", err)
	}
}
