// Package models defines the core domain records for splitledger.
//
// # Records
//
//   - Participant: a person referenced by ledger records
//   - ExpenseRecord: a shared cost fronted by one payer, split across participants
//   - TransferRecord: money that actually moved between two participants
//   - PeerDebt: a one-to-one lent/borrowed obligation with partial repayments
//   - SettlementPlan: suggested transfers that zero a group's balances
//
// # Design Principles
//
//  1. **Append-only ledger**: ExpenseRecord and TransferRecord are immutable
//     once accepted; corrections are new offsetting records. Balances are
//     always recomputed by folding the full record set, never kept as a
//     mutable running total.
//  2. **Integer minor units**: every amount is an int64 count of the smallest
//     currency unit (cents, paise). Binary floats never touch money.
//  3. **Avoid circular references**: records relate by id strings, not
//     pointers. Referential integrity is checked at validation time.
package models
