package ports

import (
	"context"
	"time"

	"github.com/medicore/hospital-system/internal/core/domain"
)

// CreateAppointmentInput carries all data needed to book an appointment.
type CreateAppointmentInput struct {
	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	Reason      string
}

// AppointmentFilter scopes a listing. Patient and doctor roles are always
// narrowed to their own records by the service layer.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    domain.AppointmentStatus
	Page      int
	Limit     int
}

// AppointmentRepository defines persistence for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*domain.Appointment, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes string) error
}

// AppointmentService defines appointment use cases.
type AppointmentService interface {
	Create(ctx context.Context, actor Actor, input CreateAppointmentInput) (*domain.Appointment, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Appointment, error)
	List(ctx context.Context, actor Actor, filter AppointmentFilter) ([]*domain.Appointment, int64, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.AppointmentStatus, notes string) (*domain.Appointment, error)
}
