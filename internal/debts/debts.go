// Package debts tracks a single lent/borrowed obligation through partial
// repayments to completion, independent of any group ledger.
//
// A debt moves pending -> pending (partial payments) -> settled, never
// backward. OriginalAmount is fixed at creation; only SettledAmount grows,
// and the full audit trail is reconstructable by replaying the linked
// settlement events against the original.
package debts

import (
	"fmt"

	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/models"
	"github.com/mohitk/splitledger/internal/money"
)

const epsilon = money.Epsilon

// StatusOf derives a debt's status from its amounts. A debt is settled once
// the remainder is within money.Epsilon of zero; the tolerance absorbs
// one-minor-unit rounding from partial splits recorded elsewhere.
func StatusOf(d *models.PeerDebt) models.DebtStatus {
	if d.Remaining() <= epsilon {
		return models.DebtSettled
	}
	return models.DebtPending
}

// Apply records a partial or final settlement against a debt and returns the
// updated copy. The input debt is never mutated.
//
// It fails with InvalidAmountError when amount is not positive or would
// overpay past the original obligation — excess must be recorded by the
// caller as a separate transaction (a gift, a new debt the other way).
func Apply(d models.PeerDebt, amount int64, settlementID string) (models.PeerDebt, error) {
	if amount <= 0 {
		return d, &ledger.InvalidAmountError{Reason: "settlement amount must be positive"}
	}
	if d.SettledAmount+amount > d.OriginalAmount+epsilon {
		return d, &ledger.InvalidAmountError{
			Reason: fmt.Sprintf("settlement of %d overpays: %d already settled of %d owed",
				amount, d.SettledAmount, d.OriginalAmount),
		}
	}

	updated := d
	updated.SettledAmount += amount
	updated.RelatedSettlementIDs = append(append([]string(nil), d.RelatedSettlementIDs...), settlementID)
	updated.Status = StatusOf(&updated)
	return updated, nil
}
