package ledger

import "fmt"

// ValidationError reports a malformed record rejected at the ledger boundary:
// a bad split sum, an unknown participant, a non-positive amount. Rejected
// records never enter balance computation.
type ValidationError struct {
	Record string // "expense", "transfer", "debt"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Record, e.Reason)
}

// InvalidAmountError reports a rejected peer-debt settlement amount:
// non-positive, or an overpayment past the original obligation.
// The debt is left unchanged.
type InvalidAmountError struct {
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return "invalid amount: " + e.Reason
}

// InvariantViolationError reports that money is unaccounted for: a balance
// set that does not sum to zero, or a plan that cannot zero out its input.
// It indicates a defect upstream (a bypassed validation, a corrupted record
// set) and is surfaced loudly, never corrected silently.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Reason
}
