package ports

import (
	"context"

	"github.com/tailormate/tailormate-api/internal/core/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)

	// List returns all appointments, filtered by requester when userID
	// is non-empty.
	List(ctx context.Context, userID string) ([]domain.Appointment, error)

	Update(ctx context.Context, apt *domain.Appointment) error
	Delete(ctx context.Context, id string) error
}

type AppointmentInput struct {
	UserID  string
	Date    string
	Time    string
	Details string
}

type UpdateAppointmentInput struct {
	Date    *string
	Time    *string
	Details *string
	Status  *domain.AppointmentStatus
}

type AppointmentService interface {
	Create(ctx context.Context, in AppointmentInput) (*domain.Appointment, error)
	Get(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, userID string) ([]domain.Appointment, error)
	Update(ctx context.Context, id string, in UpdateAppointmentInput) (*domain.Appointment, error)

	// Validate confirms the appointment: validated=true and
	// status=confirmed, set together. Idempotent on success.
	Validate(ctx context.Context, id string) (*domain.Appointment, error)

	AttachImage(ctx context.Context, id, path string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}
