// Package calculator folds a group's ledger records into per-participant net
// balances.
//
// The fold is a pure function over a complete record snapshot: no internal
// state, no caches, safe to re-run any number of times over the same input
// with identical results. All arithmetic is in int64 minor units.
package calculator

import (
	"fmt"

	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/models"
)

// Compute folds expenses and transfers into a net balance per participant.
//
// For each expense the payer's net rises by the full total (they fronted the
// money) and every split participant's net falls by their share, including
// the payer's own share, which nets out. For each transfer the sender's net
// rises (they paid money across) and the receiver's falls (their claim was
// satisfied), which is how committed settlement entries drive balances to
// zero. Positive net means the group owes the participant; negative means
// they owe the group.
//
// Every addition has a matching subtraction, so the nets of a valid record
// set sum to exactly zero. Compute verifies that before returning; a nonzero
// sum means a record bypassed validation and is reported as an
// InvariantViolationError rather than papered over.
func Compute(participants []models.Participant, expenses []models.ExpenseRecord, transfers []models.TransferRecord) (map[string]int64, error) {
	balances := make(map[string]int64, len(participants))
	for _, p := range participants {
		balances[p.ID] = 0
	}

	for _, e := range expenses {
		balances[e.PayerID] += e.TotalAmount
		for _, s := range e.Splits {
			balances[s.ParticipantID] -= s.ShareAmount
		}
	}

	for _, t := range transfers {
		balances[t.FromID] += t.Amount
		balances[t.ToID] -= t.Amount
	}

	if err := CheckConservation(balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// CheckConservation verifies the conservation law: the nets of a closed
// group sum to zero.
func CheckConservation(balances map[string]int64) error {
	var sum int64
	for _, net := range balances {
		sum += net
	}
	if sum != 0 {
		return &ledger.InvariantViolationError{
			Reason: fmt.Sprintf("balances sum to %d minor units, want 0", sum),
		}
	}
	return nil
}
