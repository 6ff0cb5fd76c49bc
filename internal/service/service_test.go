package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mohitk/splitledger/internal/models"
	"github.com/mohitk/splitledger/internal/money"
	"github.com/mohitk/splitledger/internal/storage/sqlite"
)

func newServices(t *testing.T) (*LedgerService, *DebtService) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewLedgerService(store, money.INR), NewDebtService(store)
}

func createTripGroup(t *testing.T, svc *LedgerService) *models.Group {
	t.Helper()
	group, err := svc.CreateGroup(context.Background(), "Goa Trip", []models.Participant{
		{ID: "alice", DisplayName: "Alice"},
		{ID: "bob", DisplayName: "Bob"},
		{ID: "carol", DisplayName: "Carol"},
	})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func TestSettleUpFlow(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	group := createTripGroup(t, svc)

	// Alice fronts 300.00 for dinner, Bob fronts 60.00 for the cab, both
	// split equally.
	if _, err := svc.RecordExpense(ctx, group.ID, "alice", 30000, nil, "dinner"); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	if _, err := svc.RecordExpense(ctx, group.ID, "bob", 6000, nil, "cab"); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	balances, err := svc.Balances(ctx, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	want := map[string]int64{"alice": 18000, "bob": -6000, "carol": -12000}
	for id, net := range want {
		if balances[id] != net {
			t.Errorf("net[%s] = %d, want %d", id, balances[id], net)
		}
	}

	plan, summary, err := svc.PlanSettlement(ctx, group.ID)
	if err != nil {
		t.Fatalf("PlanSettlement failed: %v", err)
	}
	if len(plan.Entries) != 2 {
		t.Fatalf("plan has %d entries, want 2", len(plan.Entries))
	}
	if plan.Entries[0].FromID != "carol" || plan.Entries[0].ToID != "alice" || plan.Entries[0].Amount != 12000 {
		t.Errorf("first entry = %+v, want carol pays alice 12000", plan.Entries[0])
	}
	if len(summary) != 2 {
		t.Fatalf("summary has %d lines, want 2", len(summary))
	}
	if summary[0] != "Carol pays Alice ₹120.00" {
		t.Errorf("summary[0] = %q", summary[0])
	}

	// Commit the plan, then retry it: the retry must insert nothing.
	transfers, inserted, err := svc.CommitPlan(ctx, plan)
	if err != nil {
		t.Fatalf("CommitPlan failed: %v", err)
	}
	if inserted != 2 || len(transfers) != 2 {
		t.Fatalf("first commit inserted %d of %d, want 2 of 2", inserted, len(transfers))
	}

	_, inserted, err = svc.CommitPlan(ctx, plan)
	if err != nil {
		t.Fatalf("retried CommitPlan failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("retried commit inserted %d transfers, want 0", inserted)
	}

	// Committed transfers drive every balance to zero.
	balances, err = svc.Balances(ctx, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	for id, net := range balances {
		if net != 0 {
			t.Errorf("after settle-up, net[%s] = %d, want 0", id, net)
		}
	}
}

func TestRecordExpenseRemainderToPayer(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	group := createTripGroup(t, svc)

	// 100.00 across three people leaves one paisa for the payer.
	expense, err := svc.RecordExpense(ctx, group.ID, "bob", 10000, nil, "snacks")
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	for _, s := range expense.Splits {
		want := int64(3333)
		if s.ParticipantID == "bob" {
			want = 3334
		}
		if s.ShareAmount != want {
			t.Errorf("share for %s = %d, want %d", s.ParticipantID, s.ShareAmount, want)
		}
	}

	balances, err := svc.Balances(ctx, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	var sum int64
	for _, net := range balances {
		sum += net
	}
	if sum != 0 {
		t.Errorf("balances sum to %d, want 0", sum)
	}
}

func TestRecordExpenseRejectsBadSplits(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	group := createTripGroup(t, svc)

	_, err := svc.RecordExpense(ctx, group.ID, "alice", 10000, []models.Split{
		{ParticipantID: "alice", ShareAmount: 5000},
		{ParticipantID: "bob", ShareAmount: 4000},
	}, "short split")
	if err == nil {
		t.Fatal("expected split-sum validation error")
	}

	// Nothing entered the ledger.
	balances, err := svc.Balances(ctx, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	for id, net := range balances {
		if net != 0 {
			t.Errorf("net[%s] = %d after rejected expense, want 0", id, net)
		}
	}
}

func TestRecordTransferValidation(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	group := createTripGroup(t, svc)

	if _, err := svc.RecordTransfer(ctx, group.ID, "bob", "bob", 100, ""); err == nil {
		t.Error("expected error for self transfer")
	}
	if _, err := svc.RecordTransfer(ctx, group.ID, "mallory", "alice", 100, ""); err == nil {
		t.Error("expected error for unknown sender")
	}
	if _, err := svc.RecordTransfer(ctx, group.ID, "bob", "alice", 0, ""); err == nil {
		t.Error("expected error for zero amount")
	}
	if _, err := svc.RecordTransfer(ctx, group.ID, "bob", "alice", 2500, "cab repayment"); err != nil {
		t.Errorf("valid transfer rejected: %v", err)
	}
}

func TestDebtServiceFlow(t *testing.T) {
	_, svc := newServices(t)
	ctx := context.Background()

	debt, err := svc.RecordDebt(ctx, "alice", "bob", models.DirectionLent, 50000, "flight tickets")
	if err != nil {
		t.Fatalf("RecordDebt failed: %v", err)
	}
	if debt.CreditorID != "alice" || debt.DebtorID != "bob" {
		t.Errorf("lent direction wrong: creditor=%s debtor=%s", debt.CreditorID, debt.DebtorID)
	}

	borrowed, err := svc.RecordDebt(ctx, "alice", "carol", models.DirectionBorrowed, 10000, "")
	if err != nil {
		t.Fatalf("RecordDebt failed: %v", err)
	}
	if borrowed.CreditorID != "carol" || borrowed.DebtorID != "alice" {
		t.Errorf("borrowed direction wrong: creditor=%s debtor=%s", borrowed.CreditorID, borrowed.DebtorID)
	}

	// Two partial settlements, then the final one.
	for _, amount := range []int64{20000, 20000} {
		debt, err = svc.SettleDebt(ctx, debt.ID, amount, "")
		if err != nil {
			t.Fatalf("SettleDebt(%d) failed: %v", amount, err)
		}
		if debt.Status != models.DebtPending {
			t.Errorf("status = %s after partial settlement, want pending", debt.Status)
		}
	}
	if debt.Remaining() != 10000 {
		t.Errorf("remaining = %d, want 10000", debt.Remaining())
	}

	// Overpayment rejected, state unchanged.
	if _, err := svc.SettleDebt(ctx, debt.ID, 20000, ""); err == nil {
		t.Fatal("expected overpayment to fail")
	}
	debtAfter, err := svc.GetDebt(ctx, debt.ID)
	if err != nil {
		t.Fatalf("GetDebt failed: %v", err)
	}
	if debtAfter.SettledAmount != 40000 {
		t.Errorf("settled = %d after rejected overpayment, want 40000", debtAfter.SettledAmount)
	}

	debt, err = svc.SettleDebt(ctx, debt.ID, 10000, "")
	if err != nil {
		t.Fatalf("final SettleDebt failed: %v", err)
	}
	if debt.Status != models.DebtSettled {
		t.Errorf("status = %s, want settled", debt.Status)
	}
	if len(debt.RelatedSettlementIDs) != 3 {
		t.Errorf("got %d settlement links, want 3", len(debt.RelatedSettlementIDs))
	}

	list, err := svc.ListDebts(ctx, "alice")
	if err != nil {
		t.Fatalf("ListDebts failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d debts for alice, want 2", len(list))
	}
}
