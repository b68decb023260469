package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypePending Type = "pending"
)

// Notification is always addressed to the owner of the related appointment,
// never the admin who triggered it.
type Notification struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AppointmentID uuid.UUID
	Type          Type
	Title         string
	Message       string
	IsRead        bool
	CreatedAt     time.Time
}

// Approved builds the notification emitted when an admin confirms an
// appointment.
func Approved(userID, appointmentID uuid.UUID, dentist string) *Notification {
	return &Notification{
		UserID:        userID,
		AppointmentID: appointmentID,
		Type:          TypeSuccess,
		Title:         "Appointment Approved",
		Message:       fmt.Sprintf("Your appointment with %s has been approved and confirmed.", dentist),
	}
}

// Rejected builds the notification emitted when an admin turns an
// appointment down.
func Rejected(userID, appointmentID uuid.UUID, dentist string) *Notification {
	return &Notification{
		UserID:        userID,
		AppointmentID: appointmentID,
		Type:          TypeError,
		Title:         "Appointment Not Available",
		Message:       fmt.Sprintf("Your appointment with %s could not be confirmed. Please reschedule with another available time or dentist.", dentist),
	}
}
