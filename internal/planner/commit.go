package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mohitk/splitledger/internal/models"
	"github.com/mohitk/splitledger/internal/money"
)

// transferNamespace is the fixed UUIDv5 namespace for committed plan entries.
// Changing it would change every commit id and break retry de-duplication.
var transferNamespace = uuid.MustParse("6b1c9c3e-7d52-4b4a-9a64-2f8b1e0c5a17")

// TransferID derives the stable id for a committed plan entry. The same
// entry committed from the same plan generation always yields the same id,
// so a retried commit de-duplicates at the store instead of double-applying.
func TransferID(entry models.PlanEntry, generatedAt int64) string {
	name := fmt.Sprintf("%s|%s|%d|%d", entry.FromID, entry.ToID, entry.Amount, generatedAt)
	return uuid.NewSHA1(transferNamespace, []byte(name)).String()
}

// Commit converts an accepted plan into transfer records, one per entry,
// each carrying its deterministic id. Pure: the records are handed back to
// the persistence collaborator, which de-duplicates by id.
func Commit(plan *models.SettlementPlan) []models.TransferRecord {
	transfers := make([]models.TransferRecord, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		transfers = append(transfers, models.TransferRecord{
			ID:        TransferID(e, plan.GeneratedAt),
			GroupID:   plan.GroupID,
			FromID:    e.FromID,
			ToID:      e.ToID,
			Amount:    e.Amount,
			Note:      "settlement",
			CreatedAt: plan.GeneratedAt,
		})
	}
	return transfers
}

// Summary renders the plan as human-readable lines ("Asha pays Ravi ₹120.00")
// purely from the plan, with no side effects. Unknown ids fall back to the
// raw id so the report never drops an entry.
func Summary(plan *models.SettlementPlan, names map[string]string, c money.Currency) []string {
	lines := make([]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		from, ok := names[e.FromID]
		if !ok {
			from = e.FromID
		}
		to, ok := names[e.ToID]
		if !ok {
			to = e.ToID
		}
		lines = append(lines, fmt.Sprintf("%s pays %s %s", from, to, money.Format(e.Amount, c)))
	}
	return lines
}
