package appointment

// Actor is the authenticated caller on whose behalf the Service acts.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// IsTerminal reports whether no further status change is allowed from s.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether an administrator may move an appointment
// from one status to another. Terminal statuses are final, a non-terminal
// status may be kept as is, and nothing moves back to pending.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if IsTerminal(from) {
		return false
	}
	if from == to {
		return true
	}
	return to != StatusPending
}

// CanOwnerCancel reports whether the owner may cancel an appointment in status s.
func CanOwnerCancel(s Status) bool {
	return s == StatusPending
}

// canAccess reports whether actor may read or change a.
func canAccess(actor Actor, a *Appointment) bool {
	return actor.IsAdmin || (actor.UserID != 0 && actor.UserID == a.UserID)
}
