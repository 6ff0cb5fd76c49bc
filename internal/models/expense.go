package models

// Split is one participant's share of an expense.
type Split struct {
	// ParticipantID is the participant who owes this share.
	ParticipantID string

	// ShareAmount is the share in minor units. Non-negative; the shares of
	// an expense sum exactly to its TotalAmount.
	ShareAmount int64
}

// ExpenseRecord is a shared cost fronted by one payer.
// Immutable once accepted; a correction is a new offsetting record.
type ExpenseRecord struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PayerID is the participant who fronted the money.
	PayerID string

	// TotalAmount is the full cost in minor units. Always positive.
	TotalAmount int64

	// Splits is the per-participant breakdown. sum(ShareAmount) == TotalAmount.
	Splits []Split

	// Description is an optional note (e.g., "Dinner at Leela").
	Description string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// TransferRecord is money that actually moved between two participants,
// either recorded directly or minted by committing a settlement plan.
// Immutable once accepted.
type TransferRecord struct {
	// ID is the unique identifier for the transfer. Direct transfers get a
	// random UUID; committed plan entries get a deterministic UUIDv5 so that
	// retried commits de-duplicate.
	ID string

	// GroupID is the group this transfer belongs to.
	GroupID string

	// FromID is the participant who paid.
	FromID string

	// ToID is the participant who received. Never equal to FromID.
	ToID string

	// Amount is the transferred amount in minor units. Always positive.
	Amount int64

	// Note is an optional description.
	Note string

	// CreatedAt is the Unix timestamp when the transfer was recorded.
	CreatedAt int64
}
