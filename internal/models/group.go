package models

// Group represents a household of users who share events and costs.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Flat 4B").
	Name string

	// Status is a free-form lifecycle label (e.g., "active").
	Status string

	// Expiration is an optional Unix timestamp after which the group is
	// considered closed. Zero means no expiration.
	Expiration int64

	// Timezone is the IANA timezone name the group schedules against.
	Timezone string

	// CreatorID is the user who created the group. The creator is always
	// a member and cannot leave; only deleting the group removes them.
	CreatorID string

	// Members is the list of member user IDs. Event members and cost
	// participants are always drawn from this set.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the user ID is in the member list.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
