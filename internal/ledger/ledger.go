// Package ledger validates records on their way into the append-only ledger
// and constructs equal splits with deterministic rounding.
//
// Validation is fail-fast and fatal: a record is either accepted whole or
// rejected whole, never coerced. Accepted records are immutable; corrections
// are new offsetting records, so that replaying the full record set always
// reproduces the same balances.
package ledger

import (
	"fmt"

	"github.com/mohitk/splitledger/internal/models"
)

// ValidateExpense checks an expense: positive total, non-negative shares,
// shares summing exactly to the total, and every referenced participant a
// member of the group.
func ValidateExpense(group *models.Group, e *models.ExpenseRecord) error {
	if e.TotalAmount <= 0 {
		return &ValidationError{Record: "expense", Reason: "total amount must be positive"}
	}
	if _, ok := group.Member(e.PayerID); !ok {
		return &ValidationError{Record: "expense", Reason: fmt.Sprintf("payer %q is not a member of the group", e.PayerID)}
	}
	if len(e.Splits) == 0 {
		return &ValidationError{Record: "expense", Reason: "expense has no splits"}
	}

	var sum int64
	seen := make(map[string]bool, len(e.Splits))
	for _, s := range e.Splits {
		if s.ShareAmount < 0 {
			return &ValidationError{Record: "expense", Reason: fmt.Sprintf("share for %q is negative", s.ParticipantID)}
		}
		if _, ok := group.Member(s.ParticipantID); !ok {
			return &ValidationError{Record: "expense", Reason: fmt.Sprintf("split participant %q is not a member of the group", s.ParticipantID)}
		}
		if seen[s.ParticipantID] {
			return &ValidationError{Record: "expense", Reason: fmt.Sprintf("participant %q appears in more than one split", s.ParticipantID)}
		}
		seen[s.ParticipantID] = true
		sum += s.ShareAmount
	}

	// Exact integer equality. Minor units never need an approximate compare.
	if sum != e.TotalAmount {
		return &ValidationError{
			Record: "expense",
			Reason: fmt.Sprintf("splits sum to %d, expense total is %d", sum, e.TotalAmount),
		}
	}
	return nil
}

// ValidateTransfer checks a transfer: positive amount, distinct endpoints,
// both endpoints members of the group.
func ValidateTransfer(group *models.Group, t *models.TransferRecord) error {
	if t.Amount <= 0 {
		return &ValidationError{Record: "transfer", Reason: "amount must be positive"}
	}
	if t.FromID == t.ToID {
		return &ValidationError{Record: "transfer", Reason: "from and to must differ"}
	}
	if _, ok := group.Member(t.FromID); !ok {
		return &ValidationError{Record: "transfer", Reason: fmt.Sprintf("sender %q is not a member of the group", t.FromID)}
	}
	if _, ok := group.Member(t.ToID); !ok {
		return &ValidationError{Record: "transfer", Reason: fmt.Sprintf("receiver %q is not a member of the group", t.ToID)}
	}
	return nil
}

// ValidateDebt checks a freshly recorded peer debt.
func ValidateDebt(d *models.PeerDebt) error {
	if d.OriginalAmount <= 0 {
		return &ValidationError{Record: "debt", Reason: "original amount must be positive"}
	}
	if d.CreditorID == "" || d.DebtorID == "" {
		return &ValidationError{Record: "debt", Reason: "creditor and debtor are required"}
	}
	if d.CreditorID == d.DebtorID {
		return &ValidationError{Record: "debt", Reason: "creditor and debtor must differ"}
	}
	if d.SettledAmount != 0 {
		return &ValidationError{Record: "debt", Reason: "settled amount must start at zero"}
	}
	return nil
}

// SplitEqually divides totalAmount across the given participants, assigning
// the integer-division remainder (at most len(participantIDs)-1 minor units)
// to the payer's own share. Rounding is resolved here, at record creation:
// downstream balances are always already integral.
func SplitEqually(totalAmount int64, payerID string, participantIDs []string) ([]models.Split, error) {
	if totalAmount <= 0 {
		return nil, &ValidationError{Record: "expense", Reason: "total amount must be positive"}
	}
	if len(participantIDs) == 0 {
		return nil, &ValidationError{Record: "expense", Reason: "expense needs at least one participant"}
	}

	n := int64(len(participantIDs))
	base := totalAmount / n
	remainder := totalAmount % n

	splits := make([]models.Split, 0, n)
	payerIncluded := false
	for _, id := range participantIDs {
		share := base
		if id == payerID {
			share += remainder
			payerIncluded = true
		}
		splits = append(splits, models.Split{ParticipantID: id, ShareAmount: share})
	}
	if !payerIncluded && remainder != 0 {
		return nil, &ValidationError{
			Record: "expense",
			Reason: fmt.Sprintf("amount %d does not divide evenly across %d participants and the payer carries no share to absorb the remainder", totalAmount, n),
		}
	}
	return splits, nil
}
