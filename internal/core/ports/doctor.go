package ports

import (
	"context"

	"github.com/medicore/hospital-system/internal/core/domain"
)

// DoctorRepository defines persistence for doctor profiles.
type DoctorRepository interface {
	Create(ctx context.Context, d *domain.Doctor) error
	FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	List(ctx context.Context, page, limit int) ([]*domain.Doctor, int64, error)
	Update(ctx context.Context, d *domain.Doctor) error
}

// DoctorService defines doctor profile use cases. Availability updates are
// limited to the doctor themself or an admin.
type DoctorService interface {
	Get(ctx context.Context, userID string) (*domain.Doctor, error)
	List(ctx context.Context, page, limit int) ([]*domain.Doctor, int64, error)
	GetAvailability(ctx context.Context, userID string) (domain.WeeklyAvailability, error)
	UpdateAvailability(ctx context.Context, actor Actor, userID string, availability domain.WeeklyAvailability) error
}
