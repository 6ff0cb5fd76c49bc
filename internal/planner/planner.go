// Package planner computes minimum-transaction settlement plans from net
// balances and turns accepted plans into transfer records.
//
// This is the classic debt-netting problem: repeatedly match the largest
// creditor with the largest debtor and transfer the smaller of the two
// magnitudes. The greedy largest-pair order gives a near-minimal transaction
// count (the provably optimal minimum is NP-hard in general) bounded by
// one less than the number of participants with a nonzero net.
package planner

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/mohitk/splitledger/internal/calculator"
	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/models"
)

// account is one side of the netting: a participant and the magnitude still
// to be matched. Magnitudes are always positive here; the heap side encodes
// the sign.
type account struct {
	id     string
	amount int64
}

// accountHeap is a max-heap of accounts ordered by magnitude, with ties
// broken by lexical id order. The tie-break makes repeated planning over the
// same balances byte-identical, which matters because the plan is shown to
// every party and must agree.
type accountHeap []account

func (h accountHeap) Len() int { return len(h) }

func (h accountHeap) Less(i, j int) bool {
	if h[i].amount != h[j].amount {
		return h[i].amount > h[j].amount
	}
	return h[i].id < h[j].id
}

func (h accountHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *accountHeap) Push(x any) { *h = append(*h, x.(account)) }

func (h *accountHeap) Pop() any {
	old := *h
	n := len(old)
	a := old[n-1]
	*h = old[:n-1]
	return a
}

func newAccountHeap(accounts []account) *accountHeap {
	// Sort before Init so heap construction never depends on map iteration
	// order.
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].amount != accounts[j].amount {
			return accounts[i].amount > accounts[j].amount
		}
		return accounts[i].id < accounts[j].id
	})
	h := accountHeap(accounts)
	heap.Init(&h)
	return &h
}

// Plan computes the settlement plan for a group's net balances.
//
// Balances must satisfy conservation (sum exactly zero); the planner only
// ever sees integral minor units, so a participant is settled iff their net
// is exactly zero. Applying every entry as a transfer drives all balances to
// zero. An input that cannot be zeroed means money is unaccounted for and is
// reported as an InvariantViolationError.
func Plan(groupID string, balances map[string]int64, generatedAt int64) (*models.SettlementPlan, error) {
	if err := calculator.CheckConservation(balances); err != nil {
		return nil, err
	}

	var creditors, debtors []account
	for id, net := range balances {
		switch {
		case net > 0:
			creditors = append(creditors, account{id: id, amount: net})
		case net < 0:
			debtors = append(debtors, account{id: id, amount: -net})
		}
	}

	ch := newAccountHeap(creditors)
	dh := newAccountHeap(debtors)

	plan := &models.SettlementPlan{GroupID: groupID, GeneratedAt: generatedAt}
	for ch.Len() > 0 && dh.Len() > 0 {
		cr := heap.Pop(ch).(account)
		db := heap.Pop(dh).(account)

		amount := cr.amount
		if db.amount < amount {
			amount = db.amount
		}
		plan.Entries = append(plan.Entries, models.PlanEntry{
			FromID: db.id,
			ToID:   cr.id,
			Amount: amount,
		})

		if cr.amount -= amount; cr.amount > 0 {
			heap.Push(ch, cr)
		}
		if db.amount -= amount; db.amount > 0 {
			heap.Push(dh, db)
		}
	}

	// Conservation guarantees both heaps empty together. A leftover here is
	// a defect upstream, surfaced, never swallowed.
	if ch.Len() > 0 || dh.Len() > 0 {
		return nil, &ledger.InvariantViolationError{
			Reason: fmt.Sprintf("plan left %d creditors and %d debtors unmatched", ch.Len(), dh.Len()),
		}
	}
	return plan, nil
}
