package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted:
		return true
	}
	return false
}

var ErrAppointmentNotFound = errors.New("appointment not found")

// Appointment is a fitting request made by a user. Validated=true always
// implies Status=confirmed; the two are set together by MarkValidated and
// nothing reverts them.
type Appointment struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Details   string            `json:"details,omitempty"`
	Status    AppointmentStatus `json:"status"`
	Validated bool              `json:"validated"`
	ImagePath string            `json:"imagePath,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// MarkValidated confirms the appointment. Calling it on an already
// validated appointment is a no-op.
func (a *Appointment) MarkValidated() {
	a.Validated = true
	a.Status = AppointmentConfirmed
}
