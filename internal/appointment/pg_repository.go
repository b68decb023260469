package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentalcare/clinic-api/internal/notification"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Dentist,
		&a.Reason,
		&a.StartsAt,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func scanAdminView(row pgx.Row) (*AdminView, error) {
	var v AdminView

	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.Dentist,
		&v.Reason,
		&v.StartsAt,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.UserName,
		&v.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &v, nil
}

func (r *PgRepository) Create(ctx context.Context, userID uuid.UUID, dentist, reason string, startsAt time.Time) (*Appointment, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, user_id, dentist, reason, starts_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', now(), now())
		RETURNING id, user_id, dentist, reason, starts_at, status, created_at, updated_at
	`, id, userID, dentist, reason, startsAt)

	return scanAppointment(row)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, dentist, reason, starts_at, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) Reschedule(ctx context.Context, id, userID uuid.UUID, dentist, reason string, startsAt time.Time) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET dentist = $3,
		    reason = $4,
		    starts_at = $5,
		    status = 'booked',
		    updated_at = now()
		WHERE id = $1
		  AND user_id = $2
		RETURNING id, user_id, dentist, reason, starts_at, status, created_at, updated_at
	`, id, userID, dentist, reason, startsAt)

	return scanAppointment(row)
}

func (r *PgRepository) Cancel(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
		    updated_at = now()
		WHERE id = $1
		  AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PgRepository) DecideWithNotification(ctx context.Context, id uuid.UUID, to Status, n *notification.Notification) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin decision tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, user_id, dentist, reason, starts_at, status, created_at, updated_at
	`, id, to)

	updated, err := scanAppointment(row)
	if err != nil {
		return nil, err
	}

	if _, err := notification.InsertTx(ctx, tx, n); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit decision tx: %w", err)
	}

	return updated, nil
}

func (r *PgRepository) ListByUser(ctx context.Context, userID uuid.UUID, statuses ...Status) ([]Appointment, error) {
	q := `
		SELECT id, user_id, dentist, reason, starts_at, status, created_at, updated_at
		FROM appointments
		WHERE user_id = $1
	`
	args := []any{userID}

	if len(statuses) > 0 {
		q += ` AND status = ANY($2)`
		strs := make([]string, len(statuses))
		for i, s := range statuses {
			strs[i] = string(s)
		}
		args = append(args, strs)
	}
	q += ` ORDER BY starts_at ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) ListAllWithOwner(ctx context.Context) ([]AdminView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.dentist, a.reason, a.starts_at, a.status, a.created_at, a.updated_at,
		       u.name, u.email
		FROM appointments a
		JOIN users u ON a.user_id = u.id
		ORDER BY a.starts_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AdminView
	for rows.Next() {
		v, err := scanAdminView(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM appointments
		WHERE status = $1
	`, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
