package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// DoctorService implements doctor profile and availability use cases.
type DoctorService struct {
	doctors ports.DoctorRepository
	logger  zerolog.Logger
}

func NewDoctorService(doctors ports.DoctorRepository, logger zerolog.Logger) *DoctorService {
	return &DoctorService{doctors: doctors, logger: logger}
}

func (s *DoctorService) Get(ctx context.Context, userID string) (*domain.Doctor, error) {
	return s.doctors.FindByUserID(ctx, userID)
}

func (s *DoctorService) List(ctx context.Context, page, limit int) ([]*domain.Doctor, int64, error) {
	page, limit = clampPage(page, limit)
	return s.doctors.List(ctx, page, limit)
}

func (s *DoctorService) GetAvailability(ctx context.Context, userID string) (domain.WeeklyAvailability, error) {
	doctor, err := s.doctors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return doctor.Availability, nil
}

// UpdateAvailability replaces the weekly schedule. Only the doctor themself
// or an admin may change it; windows must be well-formed.
func (s *DoctorService) UpdateAvailability(ctx context.Context, actor ports.Actor, userID string, availability domain.WeeklyAvailability) error {
	if actor.Role != domain.RoleAdmin && !(actor.Role == domain.RoleDoctor && actor.UserID == userID) {
		return domain.ErrForbidden
	}
	if err := availability.Validate(); err != nil {
		return err
	}

	doctor, err := s.doctors.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	doctor.Availability = availability
	doctor.UpdatedAt = time.Now().UTC()

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return err
	}

	s.logger.Info().Str("doctor_id", userID).Int("days", len(availability)).Msg("availability updated")
	return nil
}
