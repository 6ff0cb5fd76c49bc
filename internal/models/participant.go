package models

// Participant is a person referenced by ledger records.
// Equality is by ID only; DisplayName is presentation data.
type Participant struct {
	// ID is the opaque, stable identifier minted by the caller (UUID format).
	ID string

	// DisplayName is the human-readable name shown in reports.
	DisplayName string
}

// Group is a set of participants that share expenses (a trip, a household).
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Goa Trip", "Flat 4B").
	Name string

	// Members are the participants of this group.
	Members []Participant

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member returns the participant with the given id, or false if the id is
// not a member of the group.
func (g *Group) Member(id string) (Participant, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Participant{}, false
}

// MemberNames returns a display-name lookup keyed by participant id.
func (g *Group) MemberNames() map[string]string {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.ID] = m.DisplayName
	}
	return names
}
