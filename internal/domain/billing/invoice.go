package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsSticky reports whether the status is held until an explicit external
// action. Draft and Cancelled invoices are never auto-advanced by
// payment recomputation.
func (s InvoiceStatus) IsSticky() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusCancelled
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck        PaymentMethod = "CHECK"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

// Payment represents a payment applied to an invoice.
// It is owned exclusively by one invoice and stored as JSONB within the
// invoice row; InvoiceID is a back-reference for lookups only.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference,omitempty"`
}

// Payments is a slice of Payment implementing GORM Scanner/Valuer for JSONB storage
type Payments []Payment

// Value implements driver.Valuer for JSONB storage
func (p Payments) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval
func (p *Payments) Scan(value interface{}) error {
	if value == nil {
		*p = Payments{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Payments: unsupported type")
	}

	if len(bytes) == 0 {
		*p = Payments{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// NewPayment creates a new payment record
func NewPayment(invoiceID uuid.UUID, amount valueobject.Money, method PaymentMethod, reference string) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}

	return &Payment{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Amount:      amount.Amount(),
		PaymentDate: time.Now(),
		Method:      method,
		Reference:   reference,
	}, nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}

// DefaultPaymentTerm is the default period between issue date and due date
const DefaultPaymentTerm = 30 * 24 * time.Hour

// Invoice represents an invoice aggregate root.
// The amount is independent of the order total: an invoice may bill an
// order partially, and multiple invoices may be raised against one order.
// The status is re-derived from payments by UpdateStatus after every
// payment mutation.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string
	OrderID       uuid.UUID
	IssueDate     time.Time
	DueDate       time.Time
	Amount        decimal.Decimal
	Status        InvoiceStatus
	Payments      Payments
	Remark        string
	PaidAt        *time.Time
	CancelledAt   *time.Time
	CancelReason  string
}

// NewInvoice creates a new invoice in DRAFT status.
// The due date defaults to the issue date plus DefaultPaymentTerm.
func NewInvoice(invoiceNumber string, orderID uuid.UUID, amount valueobject.Money) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}

	now := time.Now()
	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		OrderID:           orderID,
		IssueDate:         now,
		DueDate:           now.Add(DefaultPaymentTerm),
		Amount:            amount.Amount(),
		Status:            InvoiceStatusDraft,
		Payments:          Payments{},
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// SetDueDate overrides the default due date.
// Must not be before the issue date.
func (inv *Invoice) SetDueDate(dueDate time.Time) error {
	if dueDate.Before(inv.IssueDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before issue date")
	}

	inv.DueDate = dueDate
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// Issue moves the invoice from DRAFT to ISSUED and re-derives the
// status so an already-overdue due date takes effect immediately.
func (inv *Invoice) Issue() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue invoice in %s status", inv.Status))
	}

	inv.Status = InvoiceStatusIssued
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, InvoiceStatusDraft, InvoiceStatusIssued))

	inv.UpdateStatus()

	return nil
}

// Cancel cancels the invoice. Cancelled is sticky: later payment
// recomputation never moves the invoice out of it.
func (inv *Invoice) Cancel(reason string) error {
	if inv.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a paid invoice")
	}
	if inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already cancelled")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	from := inv.Status
	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.CancelReason = reason
	inv.UpdatedAt = now
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, from, InvoiceStatusCancelled))

	return nil
}

// AddPayment appends a payment and re-derives the invoice status.
// Zero-amount payments are accepted: they trigger recomputation and
// nothing else. Overpayment is permitted; the remaining balance simply
// goes negative.
func (inv *Invoice) AddPayment(amount valueobject.Money, method PaymentMethod, reference string) (*Payment, error) {
	payment, err := NewPayment(inv.ID, amount, method, reference)
	if err != nil {
		return nil, err
	}

	inv.Payments = append(inv.Payments, *payment)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.UpdateStatus()

	return payment, nil
}

// UpdateStatus re-derives the invoice status from its payments and the
// current clock. The fully-paid check runs before the overdue check, so
// an invoice paid in full after its due date becomes PAID, not OVERDUE.
// Draft and Cancelled are sticky and left unchanged.
func (inv *Invoice) UpdateStatus() {
	inv.UpdateStatusAt(time.Now())
}

// UpdateStatusAt is UpdateStatus evaluated against an explicit clock
func (inv *Invoice) UpdateStatusAt(now time.Time) {
	// Draft/Cancelled stay put until an explicit Issue or Cancel
	if inv.Status.IsSticky() {
		return
	}

	var target InvoiceStatus
	switch {
	case inv.IsFullyPaid():
		target = InvoiceStatusPaid
	case inv.isOverdueAt(now):
		target = InvoiceStatusOverdue
	default:
		target = InvoiceStatusIssued
	}

	if target == inv.Status {
		return
	}

	from := inv.Status
	inv.Status = target
	inv.UpdatedAt = now

	if target == InvoiceStatusPaid {
		paidAt := now
		inv.PaidAt = &paidAt
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	}
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, from, target))
}

// GetPaidAmount returns the decimal-exact sum of all payment amounts
func (inv *Invoice) GetPaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, payment := range inv.Payments {
		paid = paid.Add(payment.Amount)
	}
	return paid
}

// GetRemainingBalance returns amount minus paid amount.
// May be negative when overpaid; it is deliberately not clamped.
func (inv *Invoice) GetRemainingBalance() decimal.Decimal {
	return inv.Amount.Sub(inv.GetPaidAmount())
}

// IsFullyPaid reports whether the paid amount covers the invoice amount.
// Overpayment counts as fully paid. Payments only accumulate, so once
// true this can never flip back to false.
func (inv *Invoice) IsFullyPaid() bool {
	return inv.GetPaidAmount().GreaterThanOrEqual(inv.Amount)
}

// IsOverdue reports whether the invoice is past due and not fully paid.
// It is evaluated against the call-time clock and never cached as a
// flag, so the answer cannot go stale.
func (inv *Invoice) IsOverdue() bool {
	return inv.isOverdueAt(time.Now())
}

// IsOverdueAt is IsOverdue evaluated against an explicit clock
func (inv *Invoice) IsOverdueAt(now time.Time) bool {
	return inv.isOverdueAt(now)
}

func (inv *Invoice) isOverdueAt(now time.Time) bool {
	return now.After(inv.DueDate) && !inv.IsFullyPaid()
}

// GetAmountMoney returns the invoice amount as Money
func (inv *Invoice) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Amount)
}

// GetPaidAmountMoney returns the paid amount as Money
func (inv *Invoice) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.GetPaidAmount())
}

// GetRemainingBalanceMoney returns the remaining balance as Money
func (inv *Invoice) GetRemainingBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.GetRemainingBalance())
}

// SetRemark sets the invoice remark
func (inv *Invoice) SetRemark(remark string) {
	inv.Remark = remark
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// PaymentCount returns the number of payments applied
func (inv *Invoice) PaymentCount() int {
	return len(inv.Payments)
}

// IsDraft returns true if the invoice is in draft status
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// IsPaid returns true if the invoice status is PAID
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsCancelled returns true if the invoice is cancelled
func (inv *Invoice) IsCancelled() bool {
	return inv.Status == InvoiceStatusCancelled
}
