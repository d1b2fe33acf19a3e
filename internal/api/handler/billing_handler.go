package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// BillingHandler handles HTTP requests for invoices.
type BillingHandler struct {
	service ports.BillingService
}

func NewBillingHandler(service ports.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

type createInvoiceRequest struct {
	PatientID     string `json:"patient_id"     validate:"required"`
	AppointmentID string `json:"appointment_id" validate:"required"`
	Amount        string `json:"amount"         validate:"required,money"`
	Description   string `json:"description"    validate:"omitempty,max=500"`
}

type updateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft issued paid void"`
}

// invoiceResponse renders amounts as decimal strings on the wire.
type invoiceResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	PatientID     string    `json:"patient_id"`
	AppointmentID string    `json:"appointment_id"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type listInvoicesResponse struct {
	Data       []invoiceResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toInvoiceResponse(inv *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		PatientID:     inv.PatientID,
		AppointmentID: inv.AppointmentID,
		Amount:        formatMoney(inv.AmountCents),
		Description:   inv.Description,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// Create handles POST /v1/billing.
//
// @Summary      Create a draft invoice
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  invoiceResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/billing [post]
func (h *BillingHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	invoice, err := h.service.Create(c.Request().Context(), actor, ports.CreateInvoiceInput{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		AmountCents:   parseMoney(req.Amount),
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toInvoiceResponse(invoice))
}

// Get handles GET /v1/billing/:id.
//
// @Summary      Get an invoice
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoiceResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/billing/{id} [get]
func (h *BillingHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	invoice, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

// List handles GET /v1/billing. Patient callers only see their own.
//
// @Summary      List invoices
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  query     string  false  "Filter by patient"
// @Param        status      query     string  false  "Filter by status"
// @Param        page        query     int     false  "Page (1-based)"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listInvoicesResponse
// @Router       /v1/billing [get]
func (h *BillingHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, limit := pageParams(c.QueryParam)
	filter := ports.InvoiceFilter{
		PatientID: c.QueryParam("patient_id"),
		Status:    domain.InvoiceStatus(c.QueryParam("status")),
		Page:      page,
		Limit:     limit,
	}

	invoices, total, err := h.service.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	data := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, toInvoiceResponse(inv))
	}
	return c.JSON(http.StatusOK, listInvoicesResponse{
		Data:       data,
		Pagination: newPagination(total, page, limit),
	})
}

// UpdateStatus handles PATCH /v1/billing/:id/status.
//
// @Summary      Transition an invoice's status
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Invoice ID"
// @Param        body  body      updateInvoiceStatusRequest  true  "Target status"
// @Success      200   {object}  invoiceResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /v1/billing/{id}/status [patch]
func (h *BillingHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	invoice, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"),
		domain.InvoiceStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}
