package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/api/metrics"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment booking.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	PatientID   string `json:"patient_id"   validate:"required"`
	DoctorID    string `json:"doctor_id"    validate:"required"`
	ScheduledAt string `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Reason      string `json:"reason"       validate:"required,max=500"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed completed cancelled no_show"`
	Notes  string `json:"notes"  validate:"omitempty,max=1000"`
}

type listAppointmentsResponse struct {
	Data       []*domain.Appointment `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

// Create handles POST /v1/appointments.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Booking details"
// @Success      201   {object}  domain.Appointment
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	scheduledAt, err := parseRFC3339(req.ScheduledAt)
	if err != nil {
		return validationFailure(c, err)
	}

	appointment, err := h.service.Create(c.Request().Context(), actor, ports.CreateAppointmentInput{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: scheduledAt,
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.AppointmentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, appointment)
}

// Get handles GET /v1/appointments/:id.
//
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  domain.Appointment
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	appointment, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointment)
}

// List handles GET /v1/appointments. Patient and doctor callers only ever see
// their own records regardless of filter parameters.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  query     string  false  "Filter by patient"
// @Param        doctor_id   query     string  false  "Filter by doctor"
// @Param        status      query     string  false  "Filter by status"
// @Param        page        query     int     false  "Page (1-based)"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listAppointmentsResponse
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, limit := pageParams(c.QueryParam)
	filter := ports.AppointmentFilter{
		PatientID: c.QueryParam("patient_id"),
		DoctorID:  c.QueryParam("doctor_id"),
		Status:    domain.AppointmentStatus(c.QueryParam("status")),
		Page:      page,
		Limit:     limit,
	}

	appointments, total, err := h.service.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	if appointments == nil {
		appointments = []*domain.Appointment{}
	}
	return c.JSON(http.StatusOK, listAppointmentsResponse{
		Data:       appointments,
		Pagination: newPagination(total, page, limit),
	})
}

// UpdateStatus handles PATCH /v1/appointments/:id/status.
//
// @Summary      Transition an appointment's status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Appointment ID"
// @Param        body  body      updateAppointmentStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Appointment
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	appointment, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"),
		domain.AppointmentStatus(req.Status), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointment)
}
