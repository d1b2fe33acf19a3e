package ports

import (
	"context"
	"time"

	"github.com/medicore/hospital-system/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Doctor and
// Patient profile fields are honoured only when the role matches.
type RegisterInput struct {
	Email     string
	Password  string
	Role      domain.Role
	FirstName string
	LastName  string

	// Doctor profile, required when Role is doctor.
	Specialization string
	LicenseNumber  string

	// Patient profile, optional when Role is patient.
	DateOfBirth      time.Time
	Gender           domain.Gender
	Phone            string
	Address          string
	EmergencyContact domain.EmergencyContact
}

// LoginResult carries the issued token pair and the authenticated user.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// AuthService defines account and session use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, userID, tokenID string, expiry time.Time) error
	// Refresh exchanges a refresh token for a new access token. When no
	// refresh flow is configured it reports domain.ErrUnsupported.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
