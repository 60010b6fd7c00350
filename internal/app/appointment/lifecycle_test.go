package appointment

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, Status("archived"), false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanOwnerCancel(t *testing.T) {
	for _, s := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled} {
		if CanOwnerCancel(s) {
			t.Errorf("owner may not cancel from %s", s)
		}
	}
	if !CanOwnerCancel(StatusPending) {
		t.Error("owner must be able to cancel a pending appointment")
	}
}

func TestCanAccess(t *testing.T) {
	a := &Appointment{UserID: 7}

	if !canAccess(Actor{UserID: 7}, a) {
		t.Error("owner denied")
	}
	if canAccess(Actor{UserID: 8}, a) {
		t.Error("stranger allowed")
	}
	if !canAccess(Actor{UserID: 1, IsAdmin: true}, a) {
		t.Error("admin denied")
	}
}
