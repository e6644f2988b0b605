package taxlot

import (
	"strings"
	"testing"
)

func TestValidate_CleanLedger(t *testing.T) {
	ledger := setupLedger(t)
	if issues := ledger.Validate(); len(issues) != 0 {
		t.Errorf("Validate() on a clean ledger = %v, want none", issues)
	}

	// Consuming everything keeps the ledger valid: zero remaining is fine.
	if _, err := ledger.Consume(DisposalRequest{On: MustParse("2025-06-01"), Quantity: Q(0.12), Proceeds: USD(7000)}, FIFO, 0); err != nil {
		t.Fatalf("Consume() returned an unexpected error: %v", err)
	}
	if issues := ledger.Validate(); len(issues) != 0 {
		t.Errorf("Validate() after full consumption = %v, want none", issues)
	}
}

func TestValidate_FlagsFaults(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(*Ledger)
		want  IssueCode
	}{
		{
			name: "negative remaining",
			setup: func(l *Ledger) {
				l.CreateLot(Acquisition{On: MustParse("2025-01-15"), Quantity: Q(1), Value: USD(100)})
				l.CorrectLot("lot-1", Q(-0.5))
			},
			want: NegativeRemaining,
		},
		{
			name: "remaining above original",
			setup: func(l *Ledger) {
				l.CreateLot(Acquisition{On: MustParse("2025-01-15"), Quantity: Q(1), Value: USD(100)})
				l.CorrectLot("lot-1", Q(2))
			},
			want: OverConsumed,
		},
		{
			name: "missing cost basis",
			setup: func(l *Ledger) {
				l.CreateLot(Acquisition{On: MustParse("2025-01-15"), Quantity: Q(1)})
			},
			want: NonPositiveCost,
		},
		{
			name: "missing purchase date",
			setup: func(l *Ledger) {
				l.CreateLot(Acquisition{Quantity: Q(1), Value: USD(100)})
			},
			want: InvalidDate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewLedger()
			tc.setup(ledger)

			issues := ledger.Validate()
			if len(issues) != 1 {
				t.Fatalf("Validate() = %v, want exactly one issue", issues)
			}
			if issues[0].Code != tc.want {
				t.Errorf("issue code = %s, want %s", issues[0].Code, tc.want)
			}
			if issues[0].LotID != "lot-1" {
				t.Errorf("issue lot = %s, want lot-1", issues[0].LotID)
			}
		})
	}
}

func TestValidate_ReportsEveryFault(t *testing.T) {
	ledger := NewLedger()
	ledger.CreateLot(Acquisition{On: MustParse("2025-01-15"), Quantity: Q(1), Value: USD(100)})
	ledger.CreateLot(Acquisition{On: MustParse("2025-02-15"), Quantity: Q(1), Value: USD(100)})
	ledger.CorrectLot("lot-1", Q(-1))
	ledger.CorrectLot("lot-2", Q(3))

	issues := ledger.Validate()
	if len(issues) != 2 {
		t.Fatalf("Validate() = %v, want two issues", issues)
	}
}

func TestValidate_OnDecodedSnapshot(t *testing.T) {
	// A hand-edited snapshot where consumption overshot the lot: the decoder
	// accepts it, Validate flags it, CorrectLot repairs it.
	jsonlStream := `
{"id":"lot-1","date":"2025-01-15","quantity":0.02,"remaining":-0.01,"currency":"USD","amount":1000}
`
	ledger, err := DecodeLots(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLots() returned an unexpected error: %v", err)
	}

	issues := ledger.Validate()
	if len(issues) != 1 || issues[0].Code != NegativeRemaining {
		t.Fatalf("Validate() = %v, want one negative-remaining issue", issues)
	}
	if got := issues[0].String(); !strings.Contains(got, "lot-1") || !strings.Contains(got, string(NegativeRemaining)) {
		t.Errorf("issue rendering %q misses the lot or the code", got)
	}

	if err := ledger.CorrectLot("lot-1", Q(0.01)); err != nil {
		t.Fatalf("CorrectLot() returned an unexpected error: %v", err)
	}
	if issues := ledger.Validate(); len(issues) != 0 {
		t.Errorf("Validate() after repair = %v, want none", issues)
	}
}
