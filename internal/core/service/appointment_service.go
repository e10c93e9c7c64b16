package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
)

// AppointmentService implements appointment CRUD and the one-way
// validation transition.
type AppointmentService struct {
	appointments  ports.AppointmentRepository
	notifications ports.NotificationService
	log           zerolog.Logger
}

func NewAppointmentService(
	appointments ports.AppointmentRepository,
	notifications ports.NotificationService,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{appointments: appointments, notifications: notifications, log: log}
}

func (s *AppointmentService) Create(ctx context.Context, in ports.AppointmentInput) (*domain.Appointment, error) {
	apt := &domain.Appointment{
		UserID:    in.UserID,
		Date:      in.Date,
		Time:      in.Time,
		Details:   in.Details,
		Status:    domain.AppointmentPending,
		Validated: false,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.appointments.Create(ctx, apt)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("appointment_id", created.ID).Str("user_id", created.UserID).Msg("appointment created")
	return created, nil
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.appointments.FindByID(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return s.appointments.List(ctx, userID)
}

// Update mutates schedule fields and, optionally, the status. It never
// touches the validated flag — only Validate does that.
func (s *AppointmentService) Update(ctx context.Context, id string, in ports.UpdateAppointmentInput) (*domain.Appointment, error) {
	apt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Date != nil {
		apt.Date = *in.Date
	}
	if in.Time != nil {
		apt.Time = *in.Time
	}
	if in.Details != nil {
		apt.Details = *in.Details
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, *in.Status)
		}
		apt.Status = *in.Status
	}

	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// Validate confirms the appointment, setting validated=true and
// status=confirmed together. Validating an already-validated appointment
// succeeds without regressing state.
func (s *AppointmentService) Validate(ctx context.Context, id string) (*domain.Appointment, error) {
	apt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if apt.Validated {
		return apt, nil
	}

	apt.MarkValidated()
	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, err
	}

	s.log.Info().Str("appointment_id", apt.ID).Msg("appointment validated")
	if s.notifications != nil {
		_, nErr := s.notifications.Create(ctx, ports.NotificationInput{
			Type:    "appointment",
			Message: fmt.Sprintf("Appointment on %s at %s has been confirmed", apt.Date, apt.Time),
			UserID:  apt.UserID,
		})
		if nErr != nil {
			s.log.Warn().Err(nErr).Str("appointment_id", apt.ID).Msg("failed to emit appointment notification")
		}
	}
	return apt, nil
}

// AttachImage records the server-local path of an uploaded reference image.
func (s *AppointmentService) AttachImage(ctx context.Context, id, path string) (*domain.Appointment, error) {
	apt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apt.ImagePath = path
	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	return s.appointments.Delete(ctx, id)
}
