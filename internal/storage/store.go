// Package storage defines the contract between the engine and its
// persistence collaborator.
package storage

import (
	"context"
	"errors"

	"github.com/mohitk/splitledger/internal/models"
)

// ErrNotFound is returned when a requested group, record, or debt does not
// exist. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator the engine publishes to and consumes
// from. The engine itself never writes storage: it computes over complete
// record snapshots handed to it and returns plain values. This abstraction
// allows swapping backends (SQLite here, the device sync layer in the app)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a group and its members.
	// The group ID and CreatedAt are populated if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// CreateExpense appends an accepted expense record.
	// Records are immutable once stored; there is no update.
	CreateExpense(ctx context.Context, expense *models.ExpenseRecord) error

	// ListExpenses returns all expense records of a group, oldest first.
	ListExpenses(ctx context.Context, groupID string) ([]models.ExpenseRecord, error)

	// CreateTransfer appends a transfer record, de-duplicating by id.
	// It reports false when a record with the same id already exists, which
	// is how retried plan commits stay idempotent.
	CreateTransfer(ctx context.Context, transfer *models.TransferRecord) (bool, error)

	// ListTransfers returns all transfer records of a group, oldest first.
	ListTransfers(ctx context.Context, groupID string) ([]models.TransferRecord, error)

	// CreateDebt persists a new peer debt.
	CreateDebt(ctx context.Context, debt *models.PeerDebt) error

	// GetDebt retrieves a peer debt with its settlement links.
	GetDebt(ctx context.Context, debtID string) (*models.PeerDebt, error)

	// ListDebts returns every debt where the participant is creditor or
	// debtor, newest first.
	ListDebts(ctx context.Context, participantID string) ([]models.PeerDebt, error)

	// RecordDebtSettlement persists an applied settlement: the debt's new
	// settled amount plus the link to the settlement event, atomically.
	RecordDebtSettlement(ctx context.Context, debt *models.PeerDebt, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
