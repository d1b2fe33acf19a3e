package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// BillingService implements invoice use cases. Only staff create or advance
// invoices; patients can read their own.
type BillingService struct {
	invoices     ports.InvoiceRepository
	appointments ports.AppointmentRepository
	logger       zerolog.Logger
}

func NewBillingService(invoices ports.InvoiceRepository, appointments ports.AppointmentRepository, logger zerolog.Logger) *BillingService {
	return &BillingService{invoices: invoices, appointments: appointments, logger: logger}
}

// Create opens a draft invoice for a billed appointment.
func (s *BillingService) Create(ctx context.Context, actor ports.Actor, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleReceptionist {
		return nil, domain.ErrForbidden
	}
	if input.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}

	appointment, err := s.appointments.FindByID(ctx, input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.PatientID != input.PatientID {
		return nil, fmt.Errorf("%w: appointment does not belong to patient", auth.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		Number:        generateInvoiceNumber(),
		PatientID:     input.PatientID,
		AppointmentID: input.AppointmentID,
		AmountCents:   input.AmountCents,
		Description:   input.Description,
		Status:        domain.InvoiceDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		s.logger.Error().Err(err).Msg("failed to create invoice")
		return nil, err
	}

	s.logger.Info().Str("invoice", invoice.Number).Str("patient_id", input.PatientID).Int64("amount_cents", input.AmountCents).Msg("invoice created")
	return invoice, nil
}

// Get retrieves a single invoice, patient-scoped for patient actors.
func (s *BillingService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Invoice, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RolePatient && invoice.PatientID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if actor.Role == domain.RoleDoctor {
		return nil, domain.ErrForbidden
	}
	return invoice, nil
}

// List returns invoices matching the filter; patient actors see only their own.
func (s *BillingService) List(ctx context.Context, actor ports.Actor, filter ports.InvoiceFilter) ([]*domain.Invoice, int64, error) {
	switch actor.Role {
	case domain.RolePatient:
		filter.PatientID = actor.UserID
	case domain.RoleDoctor:
		return nil, 0, domain.ErrForbidden
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.invoices.List(ctx, filter)
}

// UpdateStatus advances the invoice lifecycle (staff only).
func (s *BillingService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleReceptionist {
		return nil, domain.ErrForbidden
	}

	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, invoice.Status, status)
	}

	if err := s.invoices.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	invoice.Status = status
	invoice.UpdatedAt = time.Now().UTC()

	s.logger.Info().Str("invoice", invoice.Number).Str("status", string(status)).Msg("invoice status updated")
	return invoice, nil
}

// generateInvoiceNumber returns a unique invoice number in the format INV-XXXXXXXX.
func generateInvoiceNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "INV-" + id[:8]
}
