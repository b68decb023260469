package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
)

type Appointment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Dentist   string
	Reason    string
	StartsAt  time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdminView is an appointment joined with its owner's identity, for the
// admin review screen.
type AdminView struct {
	Appointment
	UserName  string
	UserEmail string
}
