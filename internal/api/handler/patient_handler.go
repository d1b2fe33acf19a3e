package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// PatientHandler handles HTTP requests for patient profiles. Staff-side
// account creation delegates to the auth service with the role pinned.
type PatientHandler struct {
	service  ports.PatientService
	accounts ports.AuthService
}

func NewPatientHandler(service ports.PatientService, accounts ports.AuthService) *PatientHandler {
	return &PatientHandler{service: service, accounts: accounts}
}

type createPatientRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`

	DateOfBirth      string                   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string                   `json:"gender"        validate:"omitempty,oneof=male female other"`
	Phone            string                   `json:"phone"`
	Address          string                   `json:"address"`
	EmergencyContact *emergencyContactRequest `json:"emergency_contact"`
}

type medicalHistoryRequest struct {
	Allergies   []string `json:"allergies"`
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
}

type updatePatientRequest struct {
	DateOfBirth      string                   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string                   `json:"gender"        validate:"omitempty,oneof=male female other"`
	Phone            string                   `json:"phone"`
	Address          string                   `json:"address"`
	EmergencyContact *emergencyContactRequest `json:"emergency_contact"`
	MedicalHistory   *medicalHistoryRequest   `json:"medical_history"`
}

type patientResponse struct {
	UserID           string                  `json:"user_id"`
	DateOfBirth      string                  `json:"date_of_birth,omitempty"`
	Gender           string                  `json:"gender,omitempty"`
	Phone            string                  `json:"phone,omitempty"`
	Address          string                  `json:"address,omitempty"`
	EmergencyContact domain.EmergencyContact `json:"emergency_contact"`
	MedicalHistory   domain.MedicalHistory   `json:"medical_history"`
}

type listPatientsResponse struct {
	Data       []patientResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toPatientResponse(p *domain.Patient) patientResponse {
	resp := patientResponse{
		UserID:           p.UserID,
		Gender:           string(p.Gender),
		Phone:            p.Phone,
		Address:          p.Address,
		EmergencyContact: p.EmergencyContact,
		MedicalHistory:   p.History,
	}
	if !p.DateOfBirth.IsZero() {
		resp.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
	}
	return resp
}

// Create handles POST /v1/patients, the staff-side path for opening a patient
// account without the self-service sign-up flow.
//
// @Summary      Create a patient account
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPatientRequest  true  "Patient details"
// @Success      201   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	var req createPatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	input := ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.RolePatient,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    domain.Gender(req.Gender),
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if req.DateOfBirth != "" {
		dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
		input.DateOfBirth = dob
	}
	if req.EmergencyContact != nil {
		input.EmergencyContact = domain.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			Phone:        req.EmergencyContact.Phone,
		}
	}

	user, err := h.accounts.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get handles GET /v1/patients/:id.
//
// @Summary      Get a patient profile
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient user ID"
// @Success      200  {object}  patientResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	patient, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPatientResponse(patient))
}

// List handles GET /v1/patients.
//
// @Summary      List patient profiles
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listPatientsResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, limit := pageParams(c.QueryParam)
	patients, total, err := h.service.List(c.Request().Context(), actor, page, limit)
	if err != nil {
		return err
	}

	data := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		data = append(data, toPatientResponse(p))
	}
	return c.JSON(http.StatusOK, listPatientsResponse{
		Data:       data,
		Pagination: newPagination(total, page, limit),
	})
}

// Update handles PUT /v1/patients/:id.
//
// @Summary      Update a patient profile
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Patient user ID"
// @Param        body  body      updatePatientRequest  true  "Profile fields"
// @Success      200   {object}  patientResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updatePatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	input := ports.UpdatePatientInput{
		Gender:  domain.Gender(req.Gender),
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.DateOfBirth != "" {
		dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
		input.DateOfBirth = dob
	}
	if req.EmergencyContact != nil {
		input.EmergencyContact = domain.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			Phone:        req.EmergencyContact.Phone,
		}
	}
	if req.MedicalHistory != nil {
		input.History = domain.MedicalHistory{
			Allergies:   req.MedicalHistory.Allergies,
			Conditions:  req.MedicalHistory.Conditions,
			Medications: req.MedicalHistory.Medications,
		}
	}

	patient, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPatientResponse(patient))
}
