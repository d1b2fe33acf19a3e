package domain

import (
	"errors"
	"time"
)

// InvoiceStatus represents the billing lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "draft"
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
	InvoiceVoid   InvoiceStatus = "void"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:  {InvoiceIssued, InvoiceVoid},
	InvoiceIssued: {InvoicePaid, InvoiceVoid},
}

var ErrInvoiceNotFound = errors.New("invoice not found")
var ErrInvalidAmount = errors.New("invalid invoice amount")

// CanTransitionTo reports whether moving from the current status to next is valid.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice bills a patient for an appointment. AmountCents keeps money integral;
// the transport layer accepts decimal strings with at most two places.
type Invoice struct {
	ID            string        `json:"id"`
	Number        string        `json:"number"`
	PatientID     string        `json:"patient_id"`
	AppointmentID string        `json:"appointment_id"`
	AmountCents   int64         `json:"amount_cents"`
	Description   string        `json:"description,omitempty"`
	Status        InvoiceStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
