package models

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Payments are stored as a JSONB column and always travel with the invoice.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	IssueDate     time.Time             `gorm:"not null"`
	DueDate       time.Time             `gorm:"not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Payments      billing.Payments      `gorm:"type:jsonb"`
	Remark        string                `gorm:"type:text"`
	PaidAt        *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		OrderID:       m.OrderID,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		Status:        m.Status,
		Payments:      m.Payments,
		Remark:        m.Remark,
		PaidAt:        m.PaidAt,
		CancelledAt:   m.CancelledAt,
		CancelReason:  m.CancelReason,
	}
	m.PopulateAggregateRoot(&inv.BaseAggregateRoot)
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.OrderID = inv.OrderID
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.Amount = inv.Amount
	m.Status = inv.Status
	m.Payments = inv.Payments
	m.Remark = inv.Remark
	m.PaidAt = inv.PaidAt
	m.CancelledAt = inv.CancelledAt
	m.CancelReason = inv.CancelReason
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}
