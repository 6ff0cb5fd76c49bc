package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mohitk/splitledger/internal/models"
)

// CreateExpense appends an expense record and its splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.ExpenseRecord) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, payer_id, total_amount, description, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.PayerID, expense.TotalAmount, expense.Description, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, participant_id, share_amount) VALUES (?, ?, ?)",
			expense.ID, split.ParticipantID, split.ShareAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpenses returns all expense records of a group with their splits,
// oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, groupID string) ([]models.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, payer_id, total_amount, description, created_at FROM expenses WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.ExpenseRecord
	for rows.Next() {
		var e models.ExpenseRecord
		if err := rows.Scan(&e.ID, &e.GroupID, &e.PayerID, &e.TotalAmount, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		splitRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id, share_amount FROM expense_splits WHERE expense_id = ? ORDER BY participant_id",
			expenses[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get expense splits: %w", err)
		}
		for splitRows.Next() {
			var split models.Split
			if err := splitRows.Scan(&split.ParticipantID, &split.ShareAmount); err != nil {
				splitRows.Close()
				return nil, fmt.Errorf("failed to scan expense split: %w", err)
			}
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
		splitRows.Close()
		if err := splitRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
		}
	}

	return expenses, nil
}

// CreateTransfer appends a transfer record, de-duplicating by id.
// Committed plan entries carry deterministic ids, so a retried commit hits
// the same primary key and the insert is ignored.
func (s *SQLiteStore) CreateTransfer(ctx context.Context, transfer *models.TransferRecord) (bool, error) {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO transfers (id, group_id, from_id, to_id, amount, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		transfer.ID, transfer.GroupID, transfer.FromID, transfer.ToID, transfer.Amount, transfer.Note, transfer.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert transfer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return affected > 0, nil
}

// ListTransfers returns all transfer records of a group, oldest first.
func (s *SQLiteStore) ListTransfers(ctx context.Context, groupID string) ([]models.TransferRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, from_id, to_id, amount, note, created_at FROM transfers WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.TransferRecord
	for rows.Next() {
		var t models.TransferRecord
		if err := rows.Scan(&t.ID, &t.GroupID, &t.FromID, &t.ToID, &t.Amount, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}
