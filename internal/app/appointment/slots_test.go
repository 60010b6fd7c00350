package appointment

import (
	"reflect"
	"testing"
)

func TestTimeSlotsMenu(t *testing.T) {
	if len(TimeSlots) != 12 {
		t.Fatalf("len(TimeSlots) = %d, want 12", len(TimeSlots))
	}
	if TimeSlots[0] != "09:00 AM" || TimeSlots[11] != "04:30 PM" {
		t.Fatalf("unexpected menu bounds %q..%q", TimeSlots[0], TimeSlots[11])
	}
}

func TestIsValidSlot(t *testing.T) {
	cases := map[string]bool{
		"09:00 AM": true,
		"02:30 PM": true,
		"12:00 PM": false,
		"9:00 AM":  false,
		"":         false,
	}
	for slot, want := range cases {
		if got := IsValidSlot(slot); got != want {
			t.Errorf("IsValidSlot(%q) = %v, want %v", slot, got, want)
		}
	}
}

func TestFilterAvailable(t *testing.T) {
	got := FilterAvailable([]string{"04:30 PM", "09:00 AM", "not-a-slot"})

	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0] != "09:30 AM" || got[len(got)-1] != "04:00 PM" {
		t.Fatalf("order not preserved: %v", got)
	}

	if all := FilterAvailable(nil); !reflect.DeepEqual(all, TimeSlots) {
		t.Fatalf("FilterAvailable(nil) = %v", all)
	}
	if none := FilterAvailable(TimeSlots); len(none) != 0 {
		t.Fatalf("fully booked day returned %v", none)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-02-15", "2024-02-15", true},
		{" 2024-02-15 ", "2024-02-15", true},
		{"2024-02-15T09:00:00Z", "2024-02-15", true},
		{"2024-02-15T23:30:00-05:00", "2024-02-15", true},
		{"2024-02-15T10:00:00", "2024-02-15", true},
		{"2024-02-15T10:00", "2024-02-15", true},
		{"0000-01-01", "", false},
		{"0000-01-01T10:00:00Z", "", false},
		{"0001-01-01", "0001-01-01", true},
		{"2024-02-30", "", false},
		{"15/02/2024", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeDate(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeDate(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
