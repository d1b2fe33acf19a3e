package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/core/ports"
)

// notificationService delivers appointment reminders. No external provider is
// wired in this deployment; delivery is a structured log event consumed by the
// ops pipeline.
type notificationService struct {
	patients ports.PatientRepository
	log      zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(patients ports.PatientRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{patients: patients, log: log}
}

// Process resolves the patient contact details and emits the reminder.
func (s *notificationService) Process(ctx context.Context, in ports.ReminderInput) error {
	patient, err := s.patients.FindByUserID(ctx, in.PatientID)
	if err != nil {
		return fmt.Errorf("process reminder: %w", err)
	}

	s.log.Info().
		Str("appointment_id", in.AppointmentID).
		Str("patient_id", in.PatientID).
		Str("phone", patient.Phone).
		Str("kind", in.Kind).
		Time("scheduled_at", in.ScheduledAt).
		Msg("appointment reminder")

	return nil
}
