package models

// DebtStatus tracks where a peer debt is in its lifecycle.
// It is derived from the amounts, never set independently.
type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtSettled DebtStatus = "settled"
)

// DebtDirection expresses a debt relative to its owner.
type DebtDirection string

const (
	DirectionLent     DebtDirection = "lent"
	DirectionBorrowed DebtDirection = "borrowed"
)

// PeerDebt is a one-to-one lent/borrowed obligation tracked independently of
// any group ledger. OriginalAmount is fixed at creation; repayments
// accumulate in SettledAmount.
type PeerDebt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// CreditorID is the participant who is owed money.
	CreditorID string

	// DebtorID is the participant who owes money.
	DebtorID string

	// OriginalAmount is the obligation in minor units. Positive, immutable.
	OriginalAmount int64

	// SettledAmount is the total repaid so far in minor units.
	// Starts at 0 and only ever grows. Never exceeds OriginalAmount.
	SettledAmount int64

	// Status is derived: settled once the remainder is within Epsilon of zero.
	Status DebtStatus

	// RelatedSettlementIDs links the transfer/settlement events that reduced
	// this debt, in application order.
	RelatedSettlementIDs []string

	// Description is an optional note.
	Description string

	// CreatedAt is the Unix timestamp when the debt was recorded.
	CreatedAt int64
}

// Remaining is the amount still owed, always derived, never stored.
func (d *PeerDebt) Remaining() int64 {
	return d.OriginalAmount - d.SettledAmount
}
