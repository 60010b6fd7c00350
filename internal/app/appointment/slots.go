package appointment

import (
	"strings"
	"time"
)

// DateLayout is the wire and storage format of appointment dates.
const DateLayout = "2006-01-02"

// TimeSlots is the daily slot menu: a morning and an afternoon shift of six
// half-hour slots each. Order is significant; AvailableSlots preserves it.
var TimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
}

// IsValidSlot reports whether slot is one of TimeSlots.
func IsValidSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// FilterAvailable returns TimeSlots minus every slot in booked, in menu order.
func FilterAvailable(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	out := make([]string, 0, len(TimeSlots))
	for _, s := range TimeSlots {
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// dateLayouts are the accepted spellings of an appointment date, tried in order.
// The zone-less forms are what a datetime-local input submits.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NormalizeDate accepts a plain calendar date or an ISO 8601 timestamp, with or
// without a zone, and returns the calendar date in DateLayout. The date part of
// a timestamp is taken as written, without converting time zones. Year 0 is
// rejected since PostgreSQL has no such date.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if d.Year() < 1 {
			return "", false
		}
		return d.Format(DateLayout), true
	}

	return "", false
}
