package handler

import (
	"time"

	billingapp "github.com/bizdesk/backend/internal/application/billing"
	"github.com/shopspring/decimal"
)

// =====================
// Invoice Request DTOs
// =====================

// CreateInvoiceRequest represents a request to create a new invoice
// @Description Request body for raising an invoice against an order
type CreateInvoiceRequest struct {
	OrderID string          `json:"order_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Amount  decimal.Decimal `json:"amount" binding:"required" example:"39.98"`
	DueDate *time.Time      `json:"due_date" example:"2026-09-30T00:00:00Z"`
	Remark  string          `json:"remark" binding:"max=500"`
}

// AddPaymentRequest represents a request to apply a payment to an invoice
// @Description Request body for recording a payment
type AddPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required" example:"20.00"`
	Method    string          `json:"method" binding:"required,oneof=CASH CARD BANK_TRANSFER CHECK" example:"BANK_TRANSFER"`
	Reference string          `json:"reference" binding:"max=200" example:"TXN-8841"`
}

// CancelInvoiceRequest represents a request to cancel an invoice
// @Description Request body for cancelling an invoice
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"max=500" example:"Raised in error"`
}

// =====================
// Invoice Response DTOs
// =====================

// PaymentResponse represents a payment in API responses
// @Description A payment applied to an invoice
type PaymentResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount" example:"20.00"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method" example:"BANK_TRANSFER" enums:"CASH,CARD,BANK_TRANSFER,CHECK"`
	Reference   string          `json:"reference,omitempty" example:"TXN-8841"`
}

// InvoiceResponse represents an invoice in API responses
// @Description Invoice details with derived payment figures
type InvoiceResponse struct {
	ID               string            `json:"id"`
	InvoiceNumber    string            `json:"invoice_number" example:"INV-20260301-A1B2C3D4"`
	OrderID          string            `json:"order_id"`
	IssueDate        time.Time         `json:"issue_date"`
	DueDate          time.Time         `json:"due_date"`
	Amount           decimal.Decimal   `json:"amount" example:"39.98"`
	Status           string            `json:"status" example:"ISSUED" enums:"DRAFT,ISSUED,PAID,OVERDUE,CANCELLED"`
	Payments         []PaymentResponse `json:"payments"`
	PaidAmount       decimal.Decimal   `json:"paid_amount" example:"20.00"`
	RemainingBalance decimal.Decimal   `json:"remaining_balance" example:"19.98"`
	Overdue          bool              `json:"overdue" example:"false"`
	Remark           string            `json:"remark,omitempty"`
	PaidAt           *time.Time        `json:"paid_at,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
	CancelReason     string            `json:"cancel_reason,omitempty"`
	Version          int               `json:"version" example:"1"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func invoiceResponseFrom(r *billingapp.InvoiceResult) InvoiceResponse {
	payments := make([]PaymentResponse, len(r.Payments))
	for i, p := range r.Payments {
		payments[i] = PaymentResponse{
			ID:          p.ID.String(),
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Method:      string(p.Method),
			Reference:   p.Reference,
		}
	}
	return InvoiceResponse{
		ID:               r.ID.String(),
		InvoiceNumber:    r.InvoiceNumber,
		OrderID:          r.OrderID.String(),
		IssueDate:        r.IssueDate,
		DueDate:          r.DueDate,
		Amount:           r.Amount,
		Status:           string(r.Status),
		Payments:         payments,
		PaidAmount:       r.PaidAmount,
		RemainingBalance: r.RemainingBalance,
		Overdue:          r.Overdue,
		Remark:           r.Remark,
		PaidAt:           r.PaidAt,
		CancelledAt:      r.CancelledAt,
		CancelReason:     r.CancelReason,
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func invoiceResponsesFrom(results []billingapp.InvoiceResult) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(results))
	for i := range results {
		responses[i] = invoiceResponseFrom(&results[i])
	}
	return responses
}
