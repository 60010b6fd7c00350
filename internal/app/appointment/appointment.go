/*
Package appointment implements booking of clinic time slots.

It contains the slot availability engine (a fixed menu of twelve half-hour
slots per day, at most one live booking per slot), the lifecycle rules for an
appointment's status, the Service that applies both on every write, and the
PostgreSQL store. The store backs the one-booking-per-slot rule with a partial
unique index, so the availability check and the insert cannot race each other
into a double booking.
*/
package appointment

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by a Store when the id does not resolve.
	ErrNotFound = errors.New("appointment not found")

	// ErrSlotTaken is returned by a Store when a write would put a second
	// live appointment on the same date and slot.
	ErrSlotTaken = errors.New("time slot already booked")

	// ErrStatusChanged is returned by Store.Update when the stored status no
	// longer matches the status the caller read.
	ErrStatusChanged = errors.New("appointment status changed concurrently")
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Services offered by the clinic.
var Services = []string{"cleaning", "whitening", "braces", "implants"}

// IsValidService reports whether name is one of Services.
func IsValidService(name string) bool {
	for _, s := range Services {
		if s == name {
			return true
		}
	}
	return false
}

// Appointment is a booked visit.
type Appointment struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Username string `json:"username,omitempty"`

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	Service string `json:"service"`

	// Date is the calendar day in YYYY-MM-DD form.
	Date     string `json:"appointmentDate"`
	TimeSlot string `json:"timeSlot"`
	Status   Status `json:"status"`
	Notes    string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Statistics summarises the appointment book for the admin dashboard.
type Statistics struct {
	Total     int `json:"totalAppointments"`
	Pending   int `json:"pendingAppointments"`
	Confirmed int `json:"confirmedAppointments"`
	Completed int `json:"completedAppointments"`
	Cancelled int `json:"cancelledAppointments"`
	Upcoming  int `json:"upcomingAppointments"`
	Past      int `json:"pastAppointments"`
}

// Store persists appointments. Implementations must reject a Create or Update
// that would leave two non-cancelled appointments on the same date and slot
// with ErrSlotTaken, and must apply an Update as a single atomic write that
// only succeeds while the stored status still equals expected.
type Store interface {
	Create(ctx context.Context, a *Appointment) error
	Get(ctx context.Context, id int64) (*Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]Appointment, error)
	ListAll(ctx context.Context) ([]Appointment, error)
	Update(ctx context.Context, a *Appointment, expected Status) error
	Delete(ctx context.Context, id int64) error

	// CountBooked counts non-cancelled appointments on date and slot,
	// ignoring excludeID when it is non-zero.
	CountBooked(ctx context.Context, date, slot string, excludeID int64) (int, error)

	// BookedSlots lists the slots held by non-cancelled appointments on date.
	BookedSlots(ctx context.Context, date string) ([]string, error)

	// Statistics counts appointments by status and relative to today.
	Statistics(ctx context.Context, today string) (*Statistics, error)
}
