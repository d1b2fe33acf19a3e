package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// AuthService implements registration, login and session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	patients ports.PatientRepository
	doctors  ports.DoctorRepository
	issuer   *auth.TokenIssuer
	sessions ports.SessionStore
	// refreshEnabled gates the token refresh flow. Off by default: without it
	// Refresh reports domain.ErrUnsupported instead of silently half-working.
	refreshEnabled bool
	refreshTTL     time.Duration
	logger         zerolog.Logger
}

type AuthServiceOption func(*AuthService)

// WithRefreshFlow enables the refresh-token exchange.
func WithRefreshFlow() AuthServiceOption {
	return func(s *AuthService) { s.refreshEnabled = true }
}

func NewAuthService(
	users ports.UserRepository,
	patients ports.PatientRepository,
	doctors ports.DoctorRepository,
	issuer *auth.TokenIssuer,
	sessions ports.SessionStore,
	logger zerolog.Logger,
	opts ...AuthServiceOption,
) *AuthService {
	s := &AuthService{
		users:      users,
		patients:   patients,
		doctors:    doctors,
		issuer:     issuer,
		sessions:   sessions,
		refreshTTL: 7 * 24 * time.Hour,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user account plus its role-matched profile extension.
// A doctor account without specialization/license is rejected; patient profile
// fields are optional and ignored for any other role.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email required", auth.ErrInvalidArgument)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", auth.ErrInvalidArgument, input.Role)
	}
	if input.Role == domain.RoleDoctor && (input.Specialization == "" || input.LicenseNumber == "") {
		return nil, fmt.Errorf("%w: doctor registration requires specialization and license number", auth.ErrInvalidArgument)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	var profileErr error
	switch input.Role {
	case domain.RoleDoctor:
		profileErr = s.doctors.Create(ctx, &domain.Doctor{
			UserID:         created.ID,
			Specialization: input.Specialization,
			LicenseNumber:  input.LicenseNumber,
			Availability:   domain.WeeklyAvailability{},
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	case domain.RolePatient:
		profileErr = s.patients.Create(ctx, &domain.Patient{
			UserID:           created.ID,
			DateOfBirth:      input.DateOfBirth,
			Gender:           input.Gender,
			Phone:            input.Phone,
			Address:          input.Address,
			EmergencyContact: input.EmergencyContact,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	if profileErr != nil {
		// Take the account back out so a retry does not hit the duplicate
		// email check against a user that has no profile.
		if delErr := s.users.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", created.ID).Msg("orphaned account left behind after profile creation failure")
		}
		return nil, fmt.Errorf("create %s profile: %w", input.Role, profileErr)
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair. A
// missing user and a wrong password both surface as ErrInvalidCredentials so
// the response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.issuer.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.SaveRefresh(ctx, user.ID, refresh, s.refreshTTL); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record refresh session")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &ports.LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Me returns the account behind a verified token subject.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, userID)
}

// Logout revokes the presented access token until its natural expiry and
// drops the user's refresh sessions.
func (s *AuthService) Logout(ctx context.Context, userID, tokenID string, expiry time.Time) error {
	if s.sessions == nil {
		return nil
	}
	if tokenID != "" {
		if err := s.sessions.RevokeAccess(ctx, tokenID, expiry); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}
	if err := s.sessions.DeleteRefresh(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh sessions: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if !s.refreshEnabled || s.sessions == nil {
		return "", domain.ErrUnsupported
	}

	claims, err := s.issuer.VerifyToken(refreshToken)
	if err != nil {
		return "", err
	}

	live, err := s.sessions.RefreshExists(ctx, claims.UserID(), refreshToken)
	if err != nil {
		return "", err
	}
	if !live {
		return "", auth.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID())
	if err != nil {
		return "", err
	}
	return s.issuer.GenerateToken(user)
}
