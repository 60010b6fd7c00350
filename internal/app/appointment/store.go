package appointment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shinesmile/internal/app/db"
)

// selectAppointments reads appointments joined with the owning user's username.
// Dates are rendered as YYYY-MM-DD text so they never pass through a time zone.
const selectAppointments = `
	SELECT a.id, a.user_id, u.username, a.full_name, a.email, a.phone, a.service,
	       to_char(a.appointment_date, 'YYYY-MM-DD'), a.time_slot, a.status,
	       COALESCE(a.notes, ''), a.created_at, a.updated_at
	FROM appointments a
	JOIN users u ON u.id = a.user_id`

// PgStore is the PostgreSQL implementation of Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a Store backed by pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	a := &Appointment{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.Username, &a.FullName, &a.Email, &a.Phone, &a.Service,
		&a.Date, &a.TimeSlot, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *PgStore) list(ctx context.Context, query string, args ...any) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Create inserts a and fills in its id, timestamps and the owner's username
// in a single statement.
func (s *PgStore) Create(ctx context.Context, a *Appointment) error {
	err := s.pool.QueryRow(ctx,
		`WITH ins AS (
		   INSERT INTO appointments
		     (user_id, full_name, email, phone, service, appointment_date, time_slot, status, notes)
		   VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, NULLIF($9, ''))
		   RETURNING id, user_id, created_at, updated_at
		 )
		 SELECT ins.id, ins.created_at, ins.updated_at, u.username
		 FROM ins JOIN users u ON u.id = ins.user_id`,
		a.UserID, a.FullName, a.Email, a.Phone, a.Service, a.Date, a.TimeSlot, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.Username)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

func (s *PgStore) Get(ctx context.Context, id int64) (*Appointment, error) {
	return scanAppointment(s.pool.QueryRow(ctx, selectAppointments+` WHERE a.id = $1`, id))
}

// ListByUser returns the user's appointments, latest date first, then latest created.
func (s *PgStore) ListByUser(ctx context.Context, userID int64) ([]Appointment, error) {
	return s.list(ctx, selectAppointments+`
		WHERE a.user_id = $1
		ORDER BY a.appointment_date DESC, a.created_at DESC, a.id DESC`, userID)
}

func (s *PgStore) ListAll(ctx context.Context) ([]Appointment, error) {
	return s.list(ctx, selectAppointments+`
		ORDER BY a.appointment_date DESC, a.created_at DESC, a.id DESC`)
}

// Update writes every mutable column in one statement, guarded by the expected status.
func (s *PgStore) Update(ctx context.Context, a *Appointment, expected Status) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments
		 SET service = $2, appointment_date = $3::date, time_slot = $4,
		     status = $5, notes = NULLIF($6, ''), updated_at = NOW()
		 WHERE id = $1 AND status = $7
		 RETURNING updated_at`,
		a.ID, a.Service, a.Date, a.TimeSlot, a.Status, a.Notes, expected,
	).Scan(&a.UpdatedAt)

	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		return ErrSlotTaken
	case db.IsNoRows(err):
		var exists bool
		if qerr := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM appointments WHERE id = $1)`, a.ID).Scan(&exists); qerr != nil {
			return qerr
		}
		if !exists {
			return ErrNotFound
		}
		return ErrStatusChanged
	default:
		return err
	}
}

func (s *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) CountBooked(ctx context.Context, date, slot string, excludeID int64) (int, error) {
	q := `SELECT COUNT(*) FROM appointments
	      WHERE appointment_date = $1::date AND time_slot = $2 AND status <> 'cancelled'`
	args := []any{date, slot}

	if excludeID != 0 {
		q += ` AND id <> $3`
		args = append(args, excludeID)
	}

	var n int
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PgStore) BookedSlots(ctx context.Context, date string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT time_slot FROM appointments
		 WHERE appointment_date = $1::date AND status <> 'cancelled'`, date)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *PgStore) Statistics(ctx context.Context, today string) (*Statistics, error) {
	st := &Statistics{}
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'pending'),
		        COUNT(*) FILTER (WHERE status = 'confirmed'),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COUNT(*) FILTER (WHERE status = 'cancelled'),
		        COUNT(*) FILTER (WHERE appointment_date >= $1::date),
		        COUNT(*) FILTER (WHERE appointment_date < $1::date)
		 FROM appointments`, today,
	).Scan(&st.Total, &st.Pending, &st.Confirmed, &st.Completed, &st.Cancelled, &st.Upcoming, &st.Past)
	if err != nil {
		return nil, fmt.Errorf("scan statistics: %w", err)
	}
	return st, nil
}
