package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Repository covers the read-state side of notifications. Rows are only ever
// created inside an admin decision transaction (see the appointment
// repository), so there is no standalone Create here.
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	// MarkRead matches by id and owner only, never by read state, so
	// re-marking an already-read row still succeeds.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
