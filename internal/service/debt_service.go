package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mohitk/splitledger/internal/debts"
	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/models"
	"github.com/mohitk/splitledger/internal/storage"
)

// DebtService handles peer debts, independent of any group ledger.
type DebtService struct {
	store storage.Store
}

// NewDebtService creates a DebtService with the given storage backend.
func NewDebtService(store storage.Store) *DebtService {
	return &DebtService{store: store}
}

// RecordDebt records a new obligation between the owner and a counterparty.
// Direction is relative to the owner: "lent" makes the owner the creditor,
// "borrowed" makes them the debtor.
func (s *DebtService) RecordDebt(ctx context.Context, ownerID, counterpartyID string, direction models.DebtDirection, amount int64, description string) (*models.PeerDebt, error) {
	debt := &models.PeerDebt{
		OriginalAmount: amount,
		Description:    description,
	}
	switch direction {
	case models.DirectionLent:
		debt.CreditorID = ownerID
		debt.DebtorID = counterpartyID
	case models.DirectionBorrowed:
		debt.CreditorID = counterpartyID
		debt.DebtorID = ownerID
	default:
		return nil, &ledger.ValidationError{Record: "debt", Reason: "direction must be lent or borrowed"}
	}

	if err := ledger.ValidateDebt(debt); err != nil {
		slog.Warn("debt rejected", "error", err)
		return nil, err
	}
	if err := s.store.CreateDebt(ctx, debt); err != nil {
		return nil, err
	}
	slog.Info("debt recorded", "debt_id", debt.ID, "creditor", debt.CreditorID, "debtor", debt.DebtorID, "amount", amount)
	return debt, nil
}

// GetDebt retrieves a debt with its settlement history.
func (s *DebtService) GetDebt(ctx context.Context, debtID string) (*models.PeerDebt, error) {
	return s.store.GetDebt(ctx, debtID)
}

// ListDebts returns every debt involving the participant.
func (s *DebtService) ListDebts(ctx context.Context, participantID string) ([]models.PeerDebt, error) {
	return s.store.ListDebts(ctx, participantID)
}

// SettleDebt applies a partial or final repayment to a debt. When
// settlementID is empty a fresh id is minted for the settlement event.
// On success the updated debt is persisted together with the event link.
func (s *DebtService) SettleDebt(ctx context.Context, debtID string, amount int64, settlementID string) (*models.PeerDebt, error) {
	debt, err := s.store.GetDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if settlementID == "" {
		settlementID = uuid.New().String()
	}

	updated, err := debts.Apply(*debt, amount, settlementID)
	if err != nil {
		slog.Warn("debt settlement rejected", "debt_id", debtID, "amount", amount, "error", err)
		return nil, err
	}
	if err := s.store.RecordDebtSettlement(ctx, &updated, settlementID); err != nil {
		return nil, err
	}
	slog.Info("debt settlement applied",
		"debt_id", debtID,
		"amount", amount,
		"settled", updated.SettledAmount,
		"remaining", updated.Remaining(),
		"status", updated.Status,
	)
	return &updated, nil
}
