package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// DoctorHandler handles HTTP requests for doctor profiles and availability.
// Admin-side account creation delegates to the auth service with the role pinned.
type DoctorHandler struct {
	service  ports.DoctorService
	accounts ports.AuthService
}

func NewDoctorHandler(service ports.DoctorService, accounts ports.AuthService) *DoctorHandler {
	return &DoctorHandler{service: service, accounts: accounts}
}

type createDoctorRequest struct {
	Email          string `json:"email"          validate:"required,email"`
	Password       string `json:"password"       validate:"required,min=8"`
	FirstName      string `json:"first_name"     validate:"required"`
	LastName       string `json:"last_name"      validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	LicenseNumber  string `json:"license_number" validate:"required"`
}

type timeWindowRequest struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end"   validate:"required,datetime=15:04"`
}

// availabilityRequest maps lowercase day names to windows; a missing day
// means unavailable.
type availabilityRequest struct {
	Days map[string]timeWindowRequest `json:"days" validate:"required,dive"`
}

type doctorResponse struct {
	UserID         string                       `json:"user_id"`
	Specialization string                       `json:"specialization"`
	LicenseNumber  string                       `json:"license_number"`
	Availability   map[string]domain.TimeWindow `json:"availability"`
}

type listDoctorsResponse struct {
	Data       []doctorResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toDoctorResponse(d *domain.Doctor) doctorResponse {
	availability := make(map[string]domain.TimeWindow, len(d.Availability))
	for day, w := range d.Availability {
		availability[weekdayName(day)] = w
	}
	return doctorResponse{
		UserID:         d.UserID,
		Specialization: d.Specialization,
		LicenseNumber:  d.LicenseNumber,
		Availability:   availability,
	}
}

// Create handles POST /v1/doctors, the admin-side path for opening a doctor
// account.
//
// @Summary      Create a doctor account
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDoctorRequest  true  "Doctor details"
// @Success      201   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req createDoctorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	user, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Role:           domain.RoleDoctor,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get handles GET /v1/doctors/:id.
//
// @Summary      Get a doctor profile
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Doctor user ID"
// @Success      200  {object}  doctorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/doctors/{id} [get]
func (h *DoctorHandler) Get(c echo.Context) error {
	doctor, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDoctorResponse(doctor))
}

// List handles GET /v1/doctors.
//
// @Summary      List doctor profiles
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listDoctorsResponse
// @Router       /v1/doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	page, limit := pageParams(c.QueryParam)
	doctors, total, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	data := make([]doctorResponse, 0, len(doctors))
	for _, d := range doctors {
		data = append(data, toDoctorResponse(d))
	}
	return c.JSON(http.StatusOK, listDoctorsResponse{
		Data:       data,
		Pagination: newPagination(total, page, limit),
	})
}

// GetAvailability handles GET /v1/doctors/:id/availability.
//
// @Summary      Get a doctor's weekly availability
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Doctor user ID"
// @Success      200  {object}  map[string]domain.TimeWindow
// @Failure      404  {object}  errorResponse
// @Router       /v1/doctors/{id}/availability [get]
func (h *DoctorHandler) GetAvailability(c echo.Context) error {
	availability, err := h.service.GetAvailability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make(map[string]domain.TimeWindow, len(availability))
	for day, w := range availability {
		out[weekdayName(day)] = w
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateAvailability handles PUT /v1/doctors/:id/availability.
//
// @Summary      Replace a doctor's weekly availability
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Doctor user ID"
// @Param        body  body      availabilityRequest  true  "Weekly schedule"
// @Success      204
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/doctors/{id}/availability [put]
func (h *DoctorHandler) UpdateAvailability(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	availability := make(domain.WeeklyAvailability, len(req.Days))
	for name, w := range req.Days {
		day, ok := weekdayNames[name]
		if !ok {
			return validationFailure(c, &ValidationError{Violations: []FieldViolation{{
				Field:   "days",
				Rule:    "weekday",
				Message: "unknown weekday " + name,
			}}})
		}
		availability[day] = domain.TimeWindow{Start: w.Start, End: w.End}
	}

	if err := h.service.UpdateAvailability(c.Request().Context(), actor, c.Param("id"), availability); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
