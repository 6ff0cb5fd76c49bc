// Package service orchestrates the engine over the persistence collaborator:
// it validates incoming records, folds snapshots into balances, plans and
// commits settlements, and drives peer-debt lifecycles.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mohitk/splitledger/internal/calculator"
	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/models"
	"github.com/mohitk/splitledger/internal/money"
	"github.com/mohitk/splitledger/internal/planner"
	"github.com/mohitk/splitledger/internal/storage"
)

// LedgerService handles group ledgers: expenses, transfers, balances,
// settlement planning and commit.
type LedgerService struct {
	store    storage.Store
	currency money.Currency
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, currency money.Currency) *LedgerService {
	return &LedgerService{store: store, currency: currency}
}

// CreateGroup creates a group with the given members.
func (s *LedgerService) CreateGroup(ctx context.Context, name string, members []models.Participant) (*models.Group, error) {
	if len(members) == 0 {
		return nil, &ledger.ValidationError{Record: "group", Reason: "group needs at least one member"}
	}
	group := &models.Group{Name: name, Members: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	slog.Info("group created", "group_id", group.ID, "members", len(group.Members))
	return group, nil
}

// Group retrieves a group with its members.
func (s *LedgerService) Group(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// RecordExpense validates and appends a shared expense. When splits is nil
// the total is divided equally across all group members, with the remainder
// assigned to the payer's share.
func (s *LedgerService) RecordExpense(ctx context.Context, groupID, payerID string, total int64, splits []models.Split, description string) (*models.ExpenseRecord, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if splits == nil {
		ids := make([]string, 0, len(group.Members))
		for _, m := range group.Members {
			ids = append(ids, m.ID)
		}
		splits, err = ledger.SplitEqually(total, payerID, ids)
		if err != nil {
			return nil, err
		}
	}

	expense := &models.ExpenseRecord{
		GroupID:     groupID,
		PayerID:     payerID,
		TotalAmount: total,
		Splits:      splits,
		Description: description,
	}
	if err := ledger.ValidateExpense(group, expense); err != nil {
		slog.Warn("expense rejected", "group_id", groupID, "error", err)
		return nil, err
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.Info("expense recorded", "group_id", groupID, "expense_id", expense.ID, "total", total)
	return expense, nil
}

// RecordTransfer validates and appends a direct payment between two members.
func (s *LedgerService) RecordTransfer(ctx context.Context, groupID, fromID, toID string, amount int64, note string) (*models.TransferRecord, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	transfer := &models.TransferRecord{
		GroupID: groupID,
		FromID:  fromID,
		ToID:    toID,
		Amount:  amount,
		Note:    note,
	}
	if err := ledger.ValidateTransfer(group, transfer); err != nil {
		slog.Warn("transfer rejected", "group_id", groupID, "error", err)
		return nil, err
	}
	if _, err := s.store.CreateTransfer(ctx, transfer); err != nil {
		return nil, err
	}
	slog.Info("transfer recorded", "group_id", groupID, "transfer_id", transfer.ID, "amount", amount)
	return transfer, nil
}

// Balances folds the group's full record set into a net balance per member.
// It is a pure recomputation over the stored snapshot: safe to call any
// number of times, never served from a cache.
func (s *LedgerService) Balances(ctx context.Context, groupID string) (map[string]int64, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	transfers, err := s.store.ListTransfers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := calculator.Compute(group.Members, expenses, transfers)
	if err != nil {
		// Money unaccounted for. Loud, never corrected silently.
		slog.Error("conservation check failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return balances, nil
}

// PlanSettlement computes the minimum-transaction settlement plan for the
// group's current balances, plus its human-readable summary.
func (s *LedgerService) PlanSettlement(ctx context.Context, groupID string) (*models.SettlementPlan, []string, error) {
	balances, err := s.Balances(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	plan, err := planner.Plan(groupID, balances, time.Now().Unix())
	if err != nil {
		slog.Error("settlement planning failed", "group_id", groupID, "error", err)
		return nil, nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	summary := planner.Summary(plan, group.MemberNames(), s.currency)
	slog.Info("settlement planned", "group_id", groupID, "entries", len(plan.Entries))
	return plan, summary, nil
}

// CommitPlan converts an accepted plan into transfer records and appends
// them. Safe to retry: entries carry deterministic ids, so a re-submitted
// plan inserts nothing new. Returns the minted records and how many were
// actually inserted this call.
func (s *LedgerService) CommitPlan(ctx context.Context, plan *models.SettlementPlan) ([]models.TransferRecord, int, error) {
	group, err := s.store.GetGroup(ctx, plan.GroupID)
	if err != nil {
		return nil, 0, err
	}

	transfers := planner.Commit(plan)
	for i := range transfers {
		if err := ledger.ValidateTransfer(group, &transfers[i]); err != nil {
			return nil, 0, fmt.Errorf("plan entry %d: %w", i, err)
		}
	}

	inserted := 0
	for i := range transfers {
		ok, err := s.store.CreateTransfer(ctx, &transfers[i])
		if err != nil {
			return nil, inserted, err
		}
		if ok {
			inserted++
		}
	}
	slog.Info("plan committed", "group_id", plan.GroupID, "entries", len(transfers), "inserted", inserted)
	return transfers, inserted, nil
}
