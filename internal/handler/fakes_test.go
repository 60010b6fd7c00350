package handler

import (
	"context"
	"strings"
	"sync"
	"time"

	"shinesmile/internal/app/appointment"
	"shinesmile/internal/app/user"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*user.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[int64]*user.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	for _, existing := range f.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id int64, upd user.ProfileUpdate) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.FullName = upd.FullName
	u.Phone = upd.Phone
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) List(_ context.Context) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []user.User{}
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

type fakeAppointments struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]appointment.Appointment
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{rows: make(map[int64]appointment.Appointment)}
}

func (f *fakeAppointments) held(date, slot string, excludeID int64) int {
	n := 0
	for id, a := range f.rows {
		if id != excludeID && a.Date == date && a.TimeSlot == slot && a.Status != appointment.StatusCancelled {
			n++
		}
	}
	return n
}

func (f *fakeAppointments) Create(_ context.Context, a *appointment.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.held(a.Date, a.TimeSlot, 0) > 0 {
		return appointment.ErrSlotTaken
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeAppointments) Get(_ context.Context, id int64) (*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.rows[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAppointments) ListByUser(_ context.Context, userID int64) ([]appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []appointment.Appointment{}
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) ListAll(_ context.Context) ([]appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []appointment.Appointment{}
	for _, a := range f.rows {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointments) Update(_ context.Context, a *appointment.Appointment, expected appointment.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.rows[a.ID]
	if !ok {
		return appointment.ErrNotFound
	}
	if cur.Status != expected {
		return appointment.ErrStatusChanged
	}
	if a.Status != appointment.StatusCancelled && f.held(a.Date, a.TimeSlot, a.ID) > 0 {
		return appointment.ErrSlotTaken
	}
	a.UpdatedAt = time.Now()
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeAppointments) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[id]; !ok {
		return appointment.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAppointments) CountBooked(_ context.Context, date, slot string, excludeID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.held(date, slot, excludeID), nil
}

func (f *fakeAppointments) BookedSlots(_ context.Context, date string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, a := range f.rows {
		if a.Date == date && a.Status != appointment.StatusCancelled {
			out = append(out, a.TimeSlot)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Statistics(_ context.Context, today string) (*appointment.Statistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := &appointment.Statistics{Total: len(f.rows)}
	for _, a := range f.rows {
		if a.Status == appointment.StatusPending {
			st.Pending++
		}
		if a.Date >= today {
			st.Upcoming++
		} else {
			st.Past++
		}
	}
	return st, nil
}
