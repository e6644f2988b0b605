package taxlot

import (
	"errors"
	"testing"
)

// setupLedger creates a ledger holding the three standard lots used across
// the accounting tests: 0.02 for $1000, 0.04 for $2000, 0.06 for $3000.
func setupLedger(t *testing.T) *Ledger {
	t.Helper()

	ledger := NewLedger()
	ledger.CreateLot(Acquisition{On: MustParse("2025-01-15"), Quantity: Q(0.02), Value: USD(1000)})
	ledger.CreateLot(Acquisition{On: MustParse("2025-02-15"), Quantity: Q(0.04), Value: USD(2000)})
	ledger.CreateLot(Acquisition{On: MustParse("2025-03-15"), Quantity: Q(0.06), Value: USD(3000)})
	return ledger
}

func TestLedger_CreateLot(t *testing.T) {
	ledger := NewLedger()

	lot := ledger.CreateLot(Acquisition{On: MustParse("2025-01-15"), Quantity: Q(0.02), Value: USD(1000), Ref: "t1", Venue: "coinbase"})

	if lot.ID != "lot-1" {
		t.Errorf("first lot id = %q, want %q", lot.ID, "lot-1")
	}
	if !lot.Remaining.Equal(lot.Original) {
		t.Errorf("new lot remaining = %s, want original %s", lot.Remaining, lot.Original)
	}
	if !lot.Cost.Equal(USD(1000)) {
		t.Errorf("new lot cost = %s, want %s", lot.Cost, USD(1000))
	}

	second := ledger.CreateLot(Acquisition{On: MustParse("2025-02-15"), Quantity: Q(0.04), Value: USD(2000)})
	if second.ID != "lot-2" {
		t.Errorf("second lot id = %q, want %q", second.ID, "lot-2")
	}
}

func TestLedger_IDsNeverReused(t *testing.T) {
	ledger := setupLedger(t)

	if err := ledger.RemoveLot("lot-3"); err != nil {
		t.Fatalf("RemoveLot() returned an unexpected error: %v", err)
	}
	lot := ledger.CreateLot(Acquisition{On: MustParse("2025-04-15"), Quantity: Q(0.01), Value: USD(500)})
	if lot.ID != "lot-4" {
		t.Errorf("lot id after removal = %q, want %q", lot.ID, "lot-4")
	}
}

func TestLedger_Aggregates(t *testing.T) {
	ledger := setupLedger(t)

	if got, want := ledger.TotalCost(), USD(6000); !got.Equal(want) {
		t.Errorf("TotalCost() = %s, want %s", got, want)
	}
	if got, want := ledger.RemainingQuantity(), Q(0.12); !got.Equal(want) {
		t.Errorf("RemainingQuantity() = %s, want %s", got, want)
	}
	if got, want := ledger.RemainingCost(), USD(6000); !got.Equal(want) {
		t.Errorf("RemainingCost() = %s, want %s", got, want)
	}

	// Consume part of the first lot: aggregates must follow without any
	// explicit recomputation step.
	if _, err := ledger.Consume(DisposalRequest{On: MustParse("2025-06-01"), Quantity: Q(0.01), Proceeds: USD(600)}, FIFO, 0); err != nil {
		t.Fatalf("Consume() returned an unexpected error: %v", err)
	}
	if got, want := ledger.TotalCost(), USD(6000); !got.Equal(want) {
		t.Errorf("TotalCost() after disposal = %s, want %s", got, want)
	}
	if got, want := ledger.RemainingQuantity(), Q(0.11); !got.Equal(want) {
		t.Errorf("RemainingQuantity() after disposal = %s, want %s", got, want)
	}
	if got, want := ledger.RemainingCost(), USD(5500); !got.Equal(want) {
		t.Errorf("RemainingCost() after disposal = %s, want %s", got, want)
	}
}

func TestLedger_UnrealizedGain(t *testing.T) {
	ledger := NewLedger()
	ledger.CreateLot(Acquisition{On: MustParse("2025-03-15"), Quantity: Q(0.06), Value: USD(3000)})

	testCases := []struct {
		name  string
		price Money
		want  Money
	}{
		{"price above basis", USD(60000), USD(600)},
		{"price below basis", USD(40000), USD(-600)},
		{"price at basis", USD(50000), USD(0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ledger.UnrealizedGain(tc.price); !got.Equal(tc.want) {
				t.Errorf("UnrealizedGain(%s) = %s, want %s", tc.price, got, tc.want)
			}
		})
	}
}

func TestLedger_ReadsAreCopies(t *testing.T) {
	ledger := setupLedger(t)

	lots := ledger.Lots()
	lots[0].Remaining = Q(99)

	reread, ok := ledger.Lot("lot-1")
	if !ok {
		t.Fatal("Lot(lot-1) not found")
	}
	if !reread.Remaining.Equal(Q(0.02)) {
		t.Errorf("mutating a returned copy leaked into the ledger: remaining = %s", reread.Remaining)
	}
}

func TestLedger_CorrectLot(t *testing.T) {
	ledger := setupLedger(t)

	if err := ledger.CorrectLot("lot-2", Q(0.01)); err != nil {
		t.Fatalf("CorrectLot() returned an unexpected error: %v", err)
	}
	lot, _ := ledger.Lot("lot-2")
	if !lot.Remaining.Equal(Q(0.01)) {
		t.Errorf("corrected remaining = %s, want %s", lot.Remaining, Q(0.01))
	}

	err := ledger.CorrectLot("lot-99", Q(1))
	if !errors.Is(err, ErrLotNotFound) {
		t.Errorf("CorrectLot(lot-99) error = %v, want ErrLotNotFound", err)
	}
}

func TestLedger_RemoveLot(t *testing.T) {
	ledger := setupLedger(t)

	if err := ledger.RemoveLot("lot-2"); err != nil {
		t.Fatalf("RemoveLot() returned an unexpected error: %v", err)
	}
	if _, ok := ledger.Lot("lot-2"); ok {
		t.Error("Lot(lot-2) still present after removal")
	}
	if got := ledger.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	err := ledger.RemoveLot("lot-99")
	if !errors.Is(err, ErrLotNotFound) {
		t.Errorf("RemoveLot(lot-99) error = %v, want ErrLotNotFound", err)
	}
}

func TestLedger_Clone(t *testing.T) {
	ledger := setupLedger(t)
	clone := ledger.Clone()

	// Consuming from the clone must not touch the original.
	if _, err := clone.Consume(DisposalRequest{On: MustParse("2025-06-01"), Quantity: Q(0.05), Proceeds: USD(3000)}, FIFO, 0); err != nil {
		t.Fatalf("Consume() on clone returned an unexpected error: %v", err)
	}
	if got, want := ledger.RemainingQuantity(), Q(0.12); !got.Equal(want) {
		t.Errorf("original RemainingQuantity() after clone consumption = %s, want %s", got, want)
	}
	if got, want := clone.RemainingQuantity(), Q(0.07); !got.Equal(want) {
		t.Errorf("clone RemainingQuantity() = %s, want %s", got, want)
	}

	// The clone continues the id sequence of the original.
	lot := clone.CreateLot(Acquisition{On: MustParse("2025-07-01"), Quantity: Q(0.01), Value: USD(500)})
	if lot.ID != "lot-4" {
		t.Errorf("clone lot id = %q, want %q", lot.ID, "lot-4")
	}
}

func TestLedger_Reset(t *testing.T) {
	ledger := setupLedger(t)
	ledger.Reset()

	if got := ledger.Len(); got != 0 {
		t.Errorf("Len() after Reset() = %d, want 0", got)
	}
	lot := ledger.CreateLot(Acquisition{On: MustParse("2025-08-01"), Quantity: Q(0.01), Value: USD(500)})
	if lot.ID != "lot-1" {
		t.Errorf("lot id after Reset() = %q, want %q", lot.ID, "lot-1")
	}
}
