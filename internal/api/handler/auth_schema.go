package handler

type emergencyContactRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	Role      string `json:"role"       validate:"required,oneof=admin doctor patient receptionist"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`

	// Required when role=doctor, ignored otherwise.
	Specialization string `json:"specialization" validate:"required_if=Role doctor"`
	LicenseNumber  string `json:"license_number" validate:"required_if=Role doctor"`

	// Optional, meaningful when role=patient.
	DateOfBirth      string                   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string                   `json:"gender"        validate:"omitempty,oneof=male female other"`
	Phone            string                   `json:"phone"`
	Address          string                   `json:"address"`
	EmergencyContact *emergencyContactRequest `json:"emergency_contact"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type authResponse struct {
	Token        string        `json:"token,omitempty"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	User         *userResponse `json:"user,omitempty"`
}
