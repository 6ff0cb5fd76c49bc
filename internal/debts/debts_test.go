package debts

import (
	"errors"
	"testing"

	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/models"
)

func newDebt(original int64) models.PeerDebt {
	return models.PeerDebt{
		ID:             "d1",
		CreditorID:     "alice",
		DebtorID:       "bob",
		OriginalAmount: original,
		Status:         models.DebtPending,
	}
}

func TestApplyLifecycle(t *testing.T) {
	// 500 owed, two partial payments of 200, then the final 100.
	debt := newDebt(500)

	debt, err := Apply(debt, 200, "s1")
	if err != nil {
		t.Fatalf("Apply(200) error = %v", err)
	}
	if debt.SettledAmount != 200 || debt.Status != models.DebtPending {
		t.Errorf("after first payment: settled = %d, status = %s; want 200, pending", debt.SettledAmount, debt.Status)
	}

	debt, err = Apply(debt, 200, "s2")
	if err != nil {
		t.Fatalf("Apply(200) error = %v", err)
	}
	if debt.SettledAmount != 400 || debt.Status != models.DebtPending {
		t.Errorf("after second payment: settled = %d, status = %s; want 400, pending", debt.SettledAmount, debt.Status)
	}
	if debt.Remaining() != 100 {
		t.Errorf("remaining = %d, want 100", debt.Remaining())
	}

	debt, err = Apply(debt, 100, "s3")
	if err != nil {
		t.Fatalf("Apply(100) error = %v", err)
	}
	if debt.Status != models.DebtSettled {
		t.Errorf("status = %s, want settled", debt.Status)
	}
	if debt.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", debt.Remaining())
	}

	wantIDs := []string{"s1", "s2", "s3"}
	if len(debt.RelatedSettlementIDs) != len(wantIDs) {
		t.Fatalf("settlement ids = %v, want %v", debt.RelatedSettlementIDs, wantIDs)
	}
	for i, id := range wantIDs {
		if debt.RelatedSettlementIDs[i] != id {
			t.Errorf("settlement id %d = %s, want %s", i, debt.RelatedSettlementIDs[i], id)
		}
	}
}

func TestApplyRejects(t *testing.T) {
	tests := []struct {
		name    string
		settled int64
		amount  int64
	}{
		{name: "zero amount", settled: 0, amount: 0},
		{name: "negative amount", settled: 0, amount: -50},
		{name: "overpayment", settled: 450, amount: 100}, // 450+100 > 500
		{name: "gross overpayment", settled: 0, amount: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debt := newDebt(500)
			debt.SettledAmount = tt.settled

			got, err := Apply(debt, tt.amount, "s1")
			if err == nil {
				t.Fatal("expected error")
			}
			var amountErr *ledger.InvalidAmountError
			if !errors.As(err, &amountErr) {
				t.Errorf("expected InvalidAmountError, got %T", err)
			}
			// State unchanged on rejection.
			if got.SettledAmount != tt.settled {
				t.Errorf("settled changed on rejection: %d -> %d", tt.settled, got.SettledAmount)
			}
			if len(got.RelatedSettlementIDs) != 0 {
				t.Errorf("settlement ids appended on rejection: %v", got.RelatedSettlementIDs)
			}
		})
	}
}

func TestApplyMonotonic(t *testing.T) {
	debt := newDebt(1000)
	prev := debt.SettledAmount

	for _, amount := range []int64{1, 99, 400, 250, 250} {
		var err error
		debt, err = Apply(debt, amount, "s")
		if err != nil {
			t.Fatalf("Apply(%d) error = %v", amount, err)
		}
		if debt.SettledAmount < prev {
			t.Fatalf("settled amount decreased: %d -> %d", prev, debt.SettledAmount)
		}
		if debt.Status == models.DebtSettled && debt.Remaining() > 1 {
			t.Fatalf("settled with %d remaining", debt.Remaining())
		}
		prev = debt.SettledAmount
	}

	if debt.Status != models.DebtSettled {
		t.Errorf("status = %s, want settled", debt.Status)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	original := newDebt(500)
	original.RelatedSettlementIDs = []string{"s0"}
	original.SettledAmount = 100

	updated, err := Apply(original, 50, "s1")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if original.SettledAmount != 100 || len(original.RelatedSettlementIDs) != 1 {
		t.Error("input debt was mutated")
	}
	if updated.SettledAmount != 150 || len(updated.RelatedSettlementIDs) != 2 {
		t.Errorf("updated debt wrong: %+v", updated)
	}
}

func TestStatusOfTolerance(t *testing.T) {
	// One minor unit outstanding counts as settled; two does not.
	debt := newDebt(500)
	debt.SettledAmount = 499
	if StatusOf(&debt) != models.DebtSettled {
		t.Error("one minor unit outstanding should be settled")
	}
	debt.SettledAmount = 498
	if StatusOf(&debt) != models.DebtPending {
		t.Error("two minor units outstanding should be pending")
	}
}
