package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// ReminderDispatcher is the interface the service uses to enqueue reminders.
type ReminderDispatcher interface {
	Enqueue(in ports.ReminderInput)
}

// AppointmentService implements booking and lifecycle management.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	patients     ports.PatientRepository
	doctors      ports.DoctorRepository
	reminders    ReminderDispatcher
	logger       zerolog.Logger
}

func NewAppointmentService(
	appointments ports.AppointmentRepository,
	patients ports.PatientRepository,
	doctors ports.DoctorRepository,
	reminders ReminderDispatcher,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		reminders:    reminders,
		logger:       logger,
	}
}

// Create books an appointment. The patient and doctor must exist, the
// requested time must be in the future and fall inside the doctor's weekly
// availability. A patient actor may only book for themself.
func (s *AppointmentService) Create(ctx context.Context, actor ports.Actor, input ports.CreateAppointmentInput) (*domain.Appointment, error) {
	if input.PatientID == "" || input.DoctorID == "" || input.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: patient, doctor and time required", auth.ErrInvalidArgument)
	}
	// The weekly window check below is weekday-and-clock only, so it would
	// happily accept a date in the past.
	if !input.ScheduledAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled time must be in the future", auth.ErrInvalidArgument)
	}
	if actor.Role == domain.RolePatient && actor.UserID != input.PatientID {
		return nil, domain.ErrForbidden
	}

	if _, err := s.patients.FindByUserID(ctx, input.PatientID); err != nil {
		return nil, err
	}
	doctor, err := s.doctors.FindByUserID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Availability.Covers(input.ScheduledAt) {
		return nil, domain.ErrOutsideAvailability
	}

	now := time.Now().UTC()
	appointment := &domain.Appointment{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		ScheduledAt: input.ScheduledAt.UTC(),
		Reason:      input.Reason,
		Status:      domain.AppointmentScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	if s.reminders != nil {
		s.reminders.Enqueue(ports.ReminderInput{
			AppointmentID: appointment.ID,
			PatientID:     appointment.PatientID,
			DoctorID:      appointment.DoctorID,
			ScheduledAt:   appointment.ScheduledAt,
			Kind:          "created",
		})
	}

	s.logger.Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", appointment.PatientID).
		Str("doctor_id", appointment.DoctorID).
		Msg("appointment created")

	return appointment, nil
}

// Get retrieves a single appointment, scoped to ownership for patients and
// doctors.
func (s *AppointmentService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSeeAppointment(actor, appointment) {
		return nil, domain.ErrForbidden
	}
	return appointment, nil
}

// List returns appointments matching the filter. Patient and doctor actors
// are always narrowed to their own records regardless of requested filters.
func (s *AppointmentService) List(ctx context.Context, actor ports.Actor, filter ports.AppointmentFilter) ([]*domain.Appointment, int64, error) {
	switch actor.Role {
	case domain.RolePatient:
		filter.PatientID = actor.UserID
	case domain.RoleDoctor:
		filter.DoctorID = actor.UserID
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.appointments.List(ctx, filter)
}

// UpdateStatus advances the appointment lifecycle. Patients may only cancel
// their own appointments; staff and the assigned doctor may apply any valid
// transition.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.AppointmentStatus, notes string) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin, domain.RoleReceptionist:
	case domain.RoleDoctor:
		if appointment.DoctorID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	case domain.RolePatient:
		if appointment.PatientID != actor.UserID || status != domain.AppointmentCancelled {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if !appointment.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, appointment.Status, status)
	}

	if err := s.appointments.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, err
	}
	appointment.Status = status
	if notes != "" {
		appointment.Notes = notes
	}
	appointment.UpdatedAt = time.Now().UTC()

	if s.reminders != nil && (status == domain.AppointmentConfirmed || status == domain.AppointmentCancelled) {
		s.reminders.Enqueue(ports.ReminderInput{
			AppointmentID: appointment.ID,
			PatientID:     appointment.PatientID,
			DoctorID:      appointment.DoctorID,
			ScheduledAt:   appointment.ScheduledAt,
			Kind:          string(status),
		})
	}

	s.logger.Info().Str("appointment_id", id).Str("status", string(status)).Msg("appointment status updated")
	return appointment, nil
}

func canSeeAppointment(actor ports.Actor, a *domain.Appointment) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleReceptionist:
		return true
	case domain.RoleDoctor:
		return a.DoctorID == actor.UserID
	case domain.RolePatient:
		return a.PatientID == actor.UserID
	}
	return false
}
