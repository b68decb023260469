package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic-api/internal/notification"
	redisclient "github.com/dentalcare/clinic-api/internal/redis"
)

var (
	ErrMissingFields   = errors.New("dentist, reason and starts_at are all required")
	ErrAppointmentBusy = errors.New("appointment is being decided, please retry")
)

// Service owns the appointment status state machine. Status only changes
// through these methods; the store never sees a raw status write from
// anywhere else.
type Service struct {
	repo   Repository
	locker redisclient.Locker
	log    zerolog.Logger
}

func NewService(repo Repository, locker redisclient.Locker, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		log:    log,
	}
}

// Book creates a pending appointment owned by the caller. An admin must
// approve it before it counts as booked.
func (s *Service) Book(ctx context.Context, userID uuid.UUID, dentist, reason string, startsAt time.Time) (*Appointment, error) {
	if dentist == "" || reason == "" || startsAt.IsZero() {
		return nil, ErrMissingFields
	}

	appt, err := s.repo.Create(ctx, userID, dentist, reason, startsAt)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("user_id", userID.String()).
		Str("dentist", dentist).
		Msg("appointment requested")

	return appt, nil
}

// Reschedule overwrites dentist, reason and time, and always lands the
// appointment on booked regardless of its prior status, including cancelled.
func (s *Service) Reschedule(ctx context.Context, id, userID uuid.UUID, dentist, reason string, startsAt time.Time) (*Appointment, error) {
	if dentist == "" || reason == "" || startsAt.IsZero() {
		return nil, ErrMissingFields
	}

	appt, err := s.repo.Reschedule(ctx, id, userID, dentist, reason, startsAt)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("reschedule appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appt.ID.String()).
		Msg("appointment rescheduled")

	return appt, nil
}

// Cancel soft-deletes: the row stays so notification history keeps a valid
// appointment reference.
func (s *Service) Cancel(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Cancel(ctx, id, userID); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return err
		}
		return fmt.Errorf("cancel appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", id.String()).
		Msg("appointment cancelled")

	return nil
}

// Approve confirms a pending appointment and notifies the owner. The lock
// keeps two admins from interleaving decisions on the same row; the status
// change and the notification commit together.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.decide(ctx, id, StatusBooked)
}

// Reject turns an appointment down and tells the owner to reschedule.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.decide(ctx, id, StatusCancelled)
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error) {
	var decided *Appointment

	err := s.locker.WithAppointmentLock(ctx, id, func(lockCtx context.Context) error {
		appt, err := s.repo.GetByID(lockCtx, id)
		if err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				return err
			}
			return fmt.Errorf("load appointment: %w", err)
		}

		var n *notification.Notification
		if to == StatusBooked {
			n = notification.Approved(appt.UserID, appt.ID, appt.Dentist)
		} else {
			n = notification.Rejected(appt.UserID, appt.ID, appt.Dentist)
		}

		updated, err := s.repo.DecideWithNotification(lockCtx, id, to, n)
		if err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				return err
			}
			return fmt.Errorf("apply decision: %w", err)
		}

		decided = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrAppointmentBusy
		}
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", decided.ID.String()).
		Str("status", string(decided.Status)).
		Msg("admin decision applied")

	return decided, nil
}

// ListMine returns the caller's active appointments (pending and booked),
// soonest first. Cancelled rows stay out of the patient view.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]Appointment, error) {
	appts, err := s.repo.ListByUser(ctx, userID, StatusPending, StatusBooked)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// ListAll returns every appointment, cancelled included, joined with owner
// identity. Admin surface only.
func (s *Service) ListAll(ctx context.Context) ([]AdminView, error) {
	appts, err := s.repo.ListAllWithOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all appointments: %w", err)
	}
	return appts, nil
}

// PendingCount reports how many bookings are waiting on an admin decision.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	count, err := s.repo.CountByStatus(ctx, StatusPending)
	if err != nil {
		return 0, fmt.Errorf("count pending appointments: %w", err)
	}
	return count, nil
}
