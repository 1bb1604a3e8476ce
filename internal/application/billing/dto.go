package billing

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceInput contains the input for invoice creation
type CreateInvoiceInput struct {
	OrderID uuid.UUID
	Amount  decimal.Decimal
	DueDate *time.Time
	Remark  string
}

// AddPaymentInput contains the input for applying a payment
type AddPaymentInput struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Method    billing.PaymentMethod
	Reference string
}

// CancelInvoiceInput contains the input for cancelling an invoice
type CancelInvoiceInput struct {
	InvoiceID uuid.UUID
	Reason    string
}

// PaymentResult is the outward-facing view of a payment
type PaymentResult struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      billing.PaymentMethod
	Reference   string
}

// InvoiceResult is the outward-facing view of an invoice
type InvoiceResult struct {
	ID               uuid.UUID
	InvoiceNumber    string
	OrderID          uuid.UUID
	IssueDate        time.Time
	DueDate          time.Time
	Amount           decimal.Decimal
	Status           billing.InvoiceStatus
	Payments         []PaymentResult
	PaidAmount       decimal.Decimal
	RemainingBalance decimal.Decimal
	Overdue          bool
	Remark           string
	PaidAt           *time.Time
	CancelledAt      *time.Time
	CancelReason     string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// invoiceResultFromDomain maps a domain invoice to the result view.
// Overdue is computed against the call-time clock.
func invoiceResultFromDomain(inv *billing.Invoice) *InvoiceResult {
	payments := make([]PaymentResult, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentResult{
			ID:          p.ID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Method:      p.Method,
			Reference:   p.Reference,
		}
	}
	return &InvoiceResult{
		ID:               inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		OrderID:          inv.OrderID,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Amount:           inv.Amount,
		Status:           inv.Status,
		Payments:         payments,
		PaidAmount:       inv.GetPaidAmount(),
		RemainingBalance: inv.GetRemainingBalance(),
		Overdue:          inv.IsOverdue(),
		Remark:           inv.Remark,
		PaidAt:           inv.PaidAt,
		CancelledAt:      inv.CancelledAt,
		CancelReason:     inv.CancelReason,
		Version:          inv.Version,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}
