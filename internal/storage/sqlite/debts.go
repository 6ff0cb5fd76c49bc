package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mohitk/splitledger/internal/debts"
	"github.com/mohitk/splitledger/internal/models"
	"github.com/mohitk/splitledger/internal/storage"
)

// CreateDebt persists a new peer debt.
func (s *SQLiteStore) CreateDebt(ctx context.Context, debt *models.PeerDebt) error {
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}
	if debt.CreatedAt == 0 {
		debt.CreatedAt = time.Now().Unix()
	}
	debt.Status = debts.StatusOf(debt)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO peer_debts (id, creditor_id, debtor_id, original_amount, settled_amount, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		debt.ID, debt.CreditorID, debt.DebtorID, debt.OriginalAmount, debt.SettledAmount, debt.Description, debt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

// GetDebt retrieves a peer debt with its settlement links.
// Status is derived from the stored amounts, never stored itself.
func (s *SQLiteStore) GetDebt(ctx context.Context, debtID string) (*models.PeerDebt, error) {
	debt := &models.PeerDebt{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, creditor_id, debtor_id, original_amount, settled_amount, description, created_at FROM peer_debts WHERE id = ?",
		debtID,
	).Scan(&debt.ID, &debt.CreditorID, &debt.DebtorID, &debt.OriginalAmount, &debt.SettledAmount, &debt.Description, &debt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt %s: %w", debtID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT settlement_id FROM debt_settlements WHERE debt_id = ? ORDER BY seq",
		debtID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get debt settlements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var settlementID string
		if err := rows.Scan(&settlementID); err != nil {
			return nil, fmt.Errorf("failed to scan debt settlement: %w", err)
		}
		debt.RelatedSettlementIDs = append(debt.RelatedSettlementIDs, settlementID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt settlements: %w", err)
	}

	debt.Status = debts.StatusOf(debt)
	return debt, nil
}

// ListDebts returns every debt where the participant is creditor or debtor,
// newest first.
func (s *SQLiteStore) ListDebts(ctx context.Context, participantID string) ([]models.PeerDebt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM peer_debts WHERE creditor_id = ? OR debtor_id = ? ORDER BY created_at DESC, id",
		participantID, participantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan debt id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	var result []models.PeerDebt
	for _, id := range ids {
		debt, err := s.GetDebt(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *debt)
	}
	return result, nil
}

// RecordDebtSettlement persists an applied settlement atomically: the new
// settled amount plus the link to the settlement event.
func (s *SQLiteStore) RecordDebtSettlement(ctx context.Context, debt *models.PeerDebt, settlementID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE peer_debts SET settled_amount = ? WHERE id = ?",
		debt.SettledAmount, debt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("debt %s: %w", debt.ID, storage.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO debt_settlements (debt_id, settlement_id, seq) VALUES (?, ?, (SELECT COUNT(*) FROM debt_settlements WHERE debt_id = ?))",
		debt.ID, settlementID, debt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt settlement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
