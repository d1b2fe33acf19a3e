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

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PatientService implements patient profile use cases with ownership checks.
type PatientService struct {
	patients ports.PatientRepository
	logger   zerolog.Logger
}

func NewPatientService(patients ports.PatientRepository, logger zerolog.Logger) *PatientService {
	return &PatientService{patients: patients, logger: logger}
}

// Get returns a patient profile. A patient actor may only read their own.
func (s *PatientService) Get(ctx context.Context, actor ports.Actor, userID string) (*domain.Patient, error) {
	if actor.Role == domain.RolePatient && actor.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return s.patients.FindByUserID(ctx, userID)
}

// List returns a page of patient profiles. Patient actors cannot list.
func (s *PatientService) List(ctx context.Context, actor ports.Actor, page, limit int) ([]*domain.Patient, int64, error) {
	if actor.Role == domain.RolePatient {
		return nil, 0, domain.ErrForbidden
	}
	page, limit = clampPage(page, limit)
	return s.patients.List(ctx, page, limit)
}

// Update mutates profile fields. Patients may edit their own profile; doctors
// may not edit patient profiles at all.
func (s *PatientService) Update(ctx context.Context, actor ports.Actor, userID string, input ports.UpdatePatientInput) (*domain.Patient, error) {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleReceptionist:
	case domain.RolePatient:
		if actor.UserID != userID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	patient, err := s.patients.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !input.Gender.Valid() {
		return nil, fmt.Errorf("%w: unknown gender %q", auth.ErrInvalidArgument, input.Gender)
	}
	if !input.DateOfBirth.IsZero() {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != "" {
		patient.Gender = input.Gender
	}
	if input.Phone != "" {
		patient.Phone = input.Phone
	}
	if input.Address != "" {
		patient.Address = input.Address
	}
	if input.EmergencyContact != (domain.EmergencyContact{}) {
		patient.EmergencyContact = input.EmergencyContact
	}
	if input.History.Allergies != nil || input.History.Conditions != nil || input.History.Medications != nil {
		patient.History = input.History
	}
	patient.UpdatedAt = time.Now().UTC()

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}

	s.logger.Info().Str("patient_id", userID).Str("actor_id", actor.UserID).Msg("patient profile updated")
	return patient, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
