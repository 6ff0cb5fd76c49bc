package models

// PlanEntry is one suggested transfer in a settlement plan.
type PlanEntry struct {
	// FromID is the debtor who should pay.
	FromID string

	// ToID is the creditor who should receive.
	ToID string

	// Amount is the suggested amount in minor units. Always positive.
	Amount int64
}

// SettlementPlan is an ordered list of suggested transfers that drives every
// net balance in a group to zero. It is derived data: nothing is persisted
// until the plan is committed, at which point each entry becomes a
// TransferRecord with a deterministic id.
type SettlementPlan struct {
	// GroupID is the group the plan was computed for.
	GroupID string

	// Entries are the suggested transfers, in deterministic order.
	Entries []PlanEntry

	// GeneratedAt is the Unix timestamp the plan was computed. Commit ids
	// derive from it, so retrying the same accepted plan is idempotent.
	GeneratedAt int64
}
