package ports

import (
	"context"
	"time"

	"github.com/medicore/hospital-system/internal/core/domain"
)

// PatientRepository defines persistence for patient profiles.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) error
	FindByUserID(ctx context.Context, userID string) (*domain.Patient, error)
	List(ctx context.Context, page, limit int) ([]*domain.Patient, int64, error)
	Update(ctx context.Context, p *domain.Patient) error
}

// UpdatePatientInput carries mutable patient profile fields.
type UpdatePatientInput struct {
	DateOfBirth      time.Time
	Gender           domain.Gender
	Phone            string
	Address          string
	EmergencyContact domain.EmergencyContact
	History          domain.MedicalHistory
}

// Actor identifies who is performing an operation, for ownership checks.
type Actor struct {
	UserID string
	Role   domain.Role
}

// PatientService defines patient profile use cases. Reads by patients are
// restricted to their own profile.
type PatientService interface {
	Get(ctx context.Context, actor Actor, userID string) (*domain.Patient, error)
	List(ctx context.Context, actor Actor, page, limit int) ([]*domain.Patient, int64, error)
	Update(ctx context.Context, actor Actor, userID string, input UpdatePatientInput) (*domain.Patient, error)
}
