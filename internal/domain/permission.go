package domain

// Permission predicates take the acting user explicitly. A nil actor is an
// anonymous request.

func IsAuthenticated(actor *User) bool {
	return actor != nil && actor.IsActive
}

func IsStaff(actor *User) bool {
	return IsAuthenticated(actor) && actor.IsStaff
}

func IsGuide(actor *User) bool {
	return IsAuthenticated(actor) && actor.IsGuide
}

// IsSelf reports whether actor is the user identified by userID.
func IsSelf(actor *User, userID uint) bool {
	return IsAuthenticated(actor) && actor.ID == userID
}

// IsEventOwner reports whether actor organizes the event.
func IsEventOwner(actor *User, event Event) bool {
	return IsAuthenticated(actor) && actor.ID == event.OrganizerID
}

// IsEventAttributeOwner reports whether actor owns a row attached to an
// event, such as a comment or a participation.
func IsEventAttributeOwner(actor *User, ownerID uint) bool {
	return IsAuthenticated(actor) && actor.ID == ownerID
}

// IsValidEvent reports whether the event's comments may be read by anyone
// other than its organizer.
func IsValidEvent(event Event) bool {
	return event.Visible()
}
