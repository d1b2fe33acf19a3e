package ports

import (
	"context"

	"github.com/medicore/hospital-system/internal/core/domain"
)

// CreateInvoiceInput carries all data needed to open a draft invoice.
type CreateInvoiceInput struct {
	PatientID     string
	AppointmentID string
	AmountCents   int64
	Description   string
}

// InvoiceFilter scopes invoice listings.
type InvoiceFilter struct {
	PatientID string
	Status    domain.InvoiceStatus
	Page      int
	Limit     int
}

// InvoiceRepository defines persistence for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error
}

// BillingService defines billing use cases.
type BillingService interface {
	Create(ctx context.Context, actor Actor, input CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Invoice, error)
	List(ctx context.Context, actor Actor, filter InvoiceFilter) ([]*domain.Invoice, int64, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.InvoiceStatus) (*domain.Invoice, error)
}
