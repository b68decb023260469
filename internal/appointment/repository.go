package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/notification"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the service.
//
// Owner-scoped mutations fold the ownership predicate into the write
// (`WHERE id = $1 AND user_id = $2`), so a missing row and a row owned by
// someone else both come back as ErrAppointmentNotFound. That ambiguity is
// deliberate: it does not leak whether another user's appointment exists.
type Repository interface {
	Create(ctx context.Context, userID uuid.UUID, dentist, reason string, startsAt time.Time) (*Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Owner-scoped writes
	Reschedule(ctx context.Context, id, userID uuid.UUID, dentist, reason string, startsAt time.Time) (*Appointment, error)
	Cancel(ctx context.Context, id, userID uuid.UUID) error

	// DecideWithNotification applies an admin decision: the status change and
	// the owner-facing notification commit in one transaction.
	DecideWithNotification(ctx context.Context, id uuid.UUID, to Status, n *notification.Notification) (*Appointment, error)

	// Listings
	ListByUser(ctx context.Context, userID uuid.UUID, statuses ...Status) ([]Appointment, error)
	ListAllWithOwner(ctx context.Context) ([]AdminView, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}
