package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"shinesmile/internal/pkg/errs"
	"shinesmile/internal/pkg/logx"
	"shinesmile/internal/pkg/req"
)

const maxNotesLength = 500

// Service applies the availability and lifecycle rules on top of a Store.
// Business failures are returned as *errs.CustomError; anything else is an
// infrastructure error wrapped with context.
type Service struct {
	store  Store
	now    func() time.Time
	logger zerolog.Logger
}

// NewService returns a Service backed by store.
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		now:    time.Now,
		logger: logx.Component("appointments"),
	}
}

// BookRequest is the body of a booking.
type BookRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Service         string `json:"service"`
	AppointmentDate string `json:"appointmentDate"`
	TimeSlot        string `json:"timeSlot"`
	Notes           string `json:"notes,omitempty"`
}

func (in BookRequest) toAppointment() (*Appointment, *errs.CustomError) {
	a := &Appointment{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Service:  in.Service,
		TimeSlot: in.TimeSlot,
		Notes:    strings.TrimSpace(in.Notes),
	}

	switch {
	case a.FullName == "":
		return nil, errs.NewError(errs.ErrMissingField, "Full name")
	case req.TooLong(a.FullName, req.MaxFullNameLength):
		return nil, errs.NewError(errs.ErrFieldTooLong, "Full name", req.MaxFullNameLength)
	case !req.IsEmail(a.Email):
		return nil, errs.NewError(errs.ErrInvalidEmail)
	case a.Phone == "":
		return nil, errs.NewError(errs.ErrMissingField, "Phone number")
	case req.TooLong(a.Phone, req.MaxPhoneLength):
		return nil, errs.NewError(errs.ErrFieldTooLong, "Phone number", req.MaxPhoneLength)
	case !IsValidService(a.Service):
		return nil, errs.NewError(errs.ErrInvalidService)
	case !IsValidSlot(a.TimeSlot):
		return nil, errs.NewError(errs.ErrInvalidTimeSlot)
	case utf8.RuneCountInString(a.Notes) > maxNotesLength:
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	date, ok := NormalizeDate(in.AppointmentDate)
	if !ok {
		return nil, errs.NewError(errs.ErrInvalidDate)
	}
	a.Date = date

	return a, nil
}

// UpdateRequest carries an administrator's edit. Nil fields are left unchanged.
type UpdateRequest struct {
	AppointmentDate *string `json:"appointmentDate,omitempty"`
	TimeSlot        *string `json:"timeSlot,omitempty"`
	Service         *string `json:"service,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// IsAvailable reports whether no live appointment other than excludeID holds date and slot.
func (s *Service) IsAvailable(ctx context.Context, date, slot string, excludeID int64) (bool, error) {
	if !IsValidSlot(slot) {
		return false, errs.NewError(errs.ErrInvalidTimeSlot)
	}

	n, err := s.store.CountBooked(ctx, date, slot, excludeID)
	if err != nil {
		return false, fmt.Errorf("count booked slots: %w", err)
	}
	return n == 0, nil
}

// AvailableSlots returns the slot menu for rawDate minus the booked slots, in menu order.
func (s *Service) AvailableSlots(ctx context.Context, rawDate string) ([]string, error) {
	date, ok := NormalizeDate(rawDate)
	if !ok {
		return nil, errs.NewError(errs.ErrInvalidDate)
	}

	booked, err := s.store.BookedSlots(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}
	return FilterAvailable(booked), nil
}

// Book validates in, checks availability and stores a pending appointment owned by actor.
func (s *Service) Book(ctx context.Context, actor Actor, in BookRequest) (*Appointment, error) {
	a, customErr := in.toAppointment()
	if customErr != nil {
		return nil, customErr
	}

	available, err := s.IsAvailable(ctx, a.Date, a.TimeSlot, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, errs.NewError(errs.ErrSlotConflict)
	}

	a.UserID = actor.UserID
	a.Status = StatusPending

	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.logger.Warn().
				Str("date", a.Date).
				Str("time_slot", a.TimeSlot).
				Msg("Slot taken between availability check and insert.")
			return nil, errs.NewError(errs.ErrSlotConflict)
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info().
		Int64("appointment_id", a.ID).
		Int64("user_id", a.UserID).
		Str("date", a.Date).
		Str("time_slot", a.TimeSlot).
		Msg("Appointment booked.")

	return a, nil
}

// ListForUser returns the actor's own appointments, newest date first.
func (s *Service) ListForUser(ctx context.Context, actor Actor) ([]Appointment, error) {
	list, err := s.store.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list user appointments: %w", err)
	}
	return list, nil
}

// ListAll returns every appointment. Administrators only.
func (s *Service) ListAll(ctx context.Context, actor Actor) ([]Appointment, error) {
	if !actor.IsAdmin {
		return nil, errs.NewError(errs.ErrAdminRequired)
	}

	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return list, nil
}

func (s *Service) load(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errs.NewError(errs.ErrAppointmentNotFound)
		}
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	return a, nil
}

// Get returns the appointment if actor owns it or is an administrator.
func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*Appointment, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(actor, a) {
		return nil, errs.NewError(errs.ErrAccessDenied)
	}
	return a, nil
}

// Cancel lets the owner cancel a pending appointment.
func (s *Service) Cancel(ctx context.Context, actor Actor, id int64) (*Appointment, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.UserID != actor.UserID {
		return nil, errs.NewError(errs.ErrAccessDenied)
	}

	if !CanOwnerCancel(current.Status) {
		return nil, errs.NewError(errs.ErrInvalidTransition, current.Status, StatusCancelled)
	}

	updated := *current
	updated.Status = StatusCancelled

	if err := s.write(ctx, &updated, current.Status); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appointment_id", id).Int64("user_id", actor.UserID).Msg("Appointment cancelled by owner.")
	return &updated, nil
}

// Update applies an administrator's edit. Moving to a different date or slot
// re-runs the availability check with the appointment itself excluded; on
// conflict the stored appointment is left untouched.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, in UpdateRequest) (*Appointment, error) {
	if !actor.IsAdmin {
		return nil, errs.NewError(errs.ErrAdminRequired)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current

	if in.AppointmentDate != nil {
		date, ok := NormalizeDate(*in.AppointmentDate)
		if !ok {
			return nil, errs.NewError(errs.ErrInvalidDate)
		}
		updated.Date = date
	}

	if in.TimeSlot != nil {
		if !IsValidSlot(*in.TimeSlot) {
			return nil, errs.NewError(errs.ErrInvalidTimeSlot)
		}
		updated.TimeSlot = *in.TimeSlot
	}

	if in.Service != nil {
		if !IsValidService(*in.Service) {
			return nil, errs.NewError(errs.ErrInvalidService)
		}
		updated.Service = *in.Service
	}

	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		if utf8.RuneCountInString(notes) > maxNotesLength {
			return nil, errs.NewError(errs.ErrInvalidParams)
		}
		updated.Notes = notes
	}

	if in.Status != nil {
		next := Status(*in.Status)
		if !next.Valid() {
			return nil, errs.NewError(errs.ErrInvalidStatus)
		}
		if next != current.Status && !CanTransition(current.Status, next) {
			return nil, errs.NewError(errs.ErrInvalidTransition, current.Status, next)
		}
		updated.Status = next
	}

	moved := updated.Date != current.Date || updated.TimeSlot != current.TimeSlot
	if moved && updated.Status != StatusCancelled {
		available, err := s.IsAvailable(ctx, updated.Date, updated.TimeSlot, current.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, errs.NewError(errs.ErrSlotConflict)
		}
	}

	if err := s.write(ctx, &updated, current.Status); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("appointment_id", id).
		Int64("admin_id", actor.UserID).
		Str("status", string(updated.Status)).
		Str("date", updated.Date).
		Str("time_slot", updated.TimeSlot).
		Msg("Appointment updated by admin.")

	return &updated, nil
}

// SetStatus changes only the status. Administrators only.
func (s *Service) SetStatus(ctx context.Context, actor Actor, id int64, status string) (*Appointment, error) {
	return s.Update(ctx, actor, id, UpdateRequest{Status: &status})
}

// write stores a, translating store sentinels into business errors.
func (s *Service) write(ctx context.Context, a *Appointment, expected Status) error {
	err := s.store.Update(ctx, a, expected)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSlotTaken):
		return errs.NewError(errs.ErrSlotConflict)
	case errors.Is(err, ErrNotFound):
		return errs.NewError(errs.ErrAppointmentNotFound)
	case errors.Is(err, ErrStatusChanged):
		return errs.NewError(errs.ErrInvalidTransition, expected, a.Status)
	default:
		return fmt.Errorf("update appointment %d: %w", a.ID, err)
	}
}

// Delete removes an appointment permanently. Administrators only.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin {
		return errs.NewError(errs.ErrAdminRequired)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return errs.NewError(errs.ErrAppointmentNotFound)
		}
		return fmt.Errorf("delete appointment %d: %w", id, err)
	}

	s.logger.Info().Int64("appointment_id", id).Int64("admin_id", actor.UserID).Msg("Appointment deleted.")
	return nil
}

// Statistics returns dashboard counters. Administrators only.
func (s *Service) Statistics(ctx context.Context, actor Actor) (*Statistics, error) {
	if !actor.IsAdmin {
		return nil, errs.NewError(errs.ErrAdminRequired)
	}

	stats, err := s.store.Statistics(ctx, s.now().Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("appointment statistics: %w", err)
	}
	return stats, nil
}
