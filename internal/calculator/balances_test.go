package calculator

import (
	"errors"
	"testing"

	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/models"
)

var participants = []models.Participant{
	{ID: "alice", DisplayName: "Alice"},
	{ID: "bob", DisplayName: "Bob"},
	{ID: "carol", DisplayName: "Carol"},
}

func equalSplits(total int64, ids ...string) []models.Split {
	share := total / int64(len(ids))
	splits := make([]models.Split, 0, len(ids))
	for _, id := range ids {
		splits = append(splits, models.Split{ParticipantID: id, ShareAmount: share})
	}
	return splits
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		expenses  []models.ExpenseRecord
		transfers []models.TransferRecord
		want      map[string]int64
	}{
		{
			name: "no records",
			want: map[string]int64{"alice": 0, "bob": 0, "carol": 0},
		},
		{
			// Alice fronts 300 for dinner split equally, Bob fronts 60 for
			// a cab split equally.
			name: "dinner and cab",
			expenses: []models.ExpenseRecord{
				{PayerID: "alice", TotalAmount: 300, Splits: equalSplits(300, "alice", "bob", "carol")},
				{PayerID: "bob", TotalAmount: 60, Splits: equalSplits(60, "alice", "bob", "carol")},
			},
			want: map[string]int64{"alice": 180, "bob": -60, "carol": -120},
		},
		{
			// Bob repaying Alice clears his debt and reduces her claim.
			name: "transfer settles debt between endpoints",
			expenses: []models.ExpenseRecord{
				{PayerID: "alice", TotalAmount: 300, Splits: equalSplits(300, "alice", "bob", "carol")},
			},
			transfers: []models.TransferRecord{
				{FromID: "bob", ToID: "alice", Amount: 100},
			},
			want: map[string]int64{"alice": 100, "bob": 0, "carol": -100},
		},
		{
			name: "transfers alone cancel out",
			transfers: []models.TransferRecord{
				{FromID: "bob", ToID: "alice", Amount: 100},
				{FromID: "alice", ToID: "bob", Amount: 100},
			},
			want: map[string]int64{"alice": 0, "bob": 0, "carol": 0},
		},
		{
			name: "uneven splits",
			expenses: []models.ExpenseRecord{
				{PayerID: "carol", TotalAmount: 250, Splits: []models.Split{
					{ParticipantID: "alice", ShareAmount: 200},
					{ParticipantID: "bob", ShareAmount: 50},
				}},
			},
			want: map[string]int64{"alice": -200, "bob": -50, "carol": 250},
		},
		{
			name: "correction is an offsetting record",
			expenses: []models.ExpenseRecord{
				{PayerID: "alice", TotalAmount: 90, Splits: equalSplits(90, "alice", "bob", "carol")},
				// The correction reverses the shares back onto the payer.
				{PayerID: "bob", TotalAmount: 30, Splits: []models.Split{{ParticipantID: "alice", ShareAmount: 30}}},
				{PayerID: "carol", TotalAmount: 30, Splits: []models.Split{{ParticipantID: "alice", ShareAmount: 30}}},
			},
			want: map[string]int64{"alice": 0, "bob": 0, "carol": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(participants, tt.expenses, tt.transfers)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}

			var sum int64
			for id, net := range got {
				sum += net
				if net != tt.want[id] {
					t.Errorf("net[%s] = %d, want %d", id, net, tt.want[id])
				}
			}
			if sum != 0 {
				t.Errorf("balances sum to %d, want 0 (conservation)", sum)
			}
		})
	}
}

func TestComputeIdempotent(t *testing.T) {
	expenses := []models.ExpenseRecord{
		{PayerID: "alice", TotalAmount: 300, Splits: equalSplits(300, "alice", "bob", "carol")},
	}
	first, err := Compute(participants, expenses, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	second, err := Compute(participants, expenses, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for id := range first {
		if first[id] != second[id] {
			t.Errorf("net[%s] differs between runs: %d vs %d", id, first[id], second[id])
		}
	}
}

func TestCheckConservation(t *testing.T) {
	if err := CheckConservation(map[string]int64{"a": 100, "b": -100}); err != nil {
		t.Errorf("balanced map rejected: %v", err)
	}

	err := CheckConservation(map[string]int64{"a": 100, "b": -99})
	if err == nil {
		t.Fatal("unbalanced map accepted")
	}
	var invariantErr *ledger.InvariantViolationError
	if !errors.As(err, &invariantErr) {
		t.Errorf("expected InvariantViolationError, got %T", err)
	}
}
