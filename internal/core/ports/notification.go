package ports

import (
	"context"
	"time"
)

// ReminderInput describes a single appointment reminder to deliver.
type ReminderInput struct {
	AppointmentID string
	PatientID     string
	DoctorID      string
	ScheduledAt   time.Time
	Kind          string // "created", "confirmed", "cancelled"
}

// NotificationService delivers appointment reminders.
type NotificationService interface {
	Process(ctx context.Context, in ReminderInput) error
}
