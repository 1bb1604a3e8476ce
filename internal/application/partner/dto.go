package partner

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerInput contains the input for customer creation
type CreateCustomerInput struct {
	Code        string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Notes       string
}

// UpdateCustomerInput contains the input for customer updates
type UpdateCustomerInput struct {
	CustomerID  uuid.UUID
	Name        *string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	Notes       *string
}

// CustomerResult is the outward-facing view of a customer
type CustomerResult struct {
	ID           uuid.UUID
	Code         string
	Name         string
	ContactName  string
	Phone        string
	Email        string
	Address      string
	Status       partner.CustomerStatus
	RegisteredAt time.Time
	Notes        string
	OrderCount   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func customerResultFromDomain(c *partner.Customer) *CustomerResult {
	return &CustomerResult{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		ContactName:  c.ContactName,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Status:       c.Status,
		RegisteredAt: c.RegisteredAt,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CreateSupplierInput contains the input for supplier creation
type CreateSupplierInput struct {
	Code        string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Notes       string
}

// UpdateSupplierInput contains the input for supplier updates
type UpdateSupplierInput struct {
	SupplierID  uuid.UUID
	Name        *string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	Notes       *string
}

// SupplierResult is the outward-facing view of a supplier
type SupplierResult struct {
	ID          uuid.UUID
	Code        string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Status      partner.SupplierStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func supplierResultFromDomain(s *partner.Supplier) *SupplierResult {
	return &SupplierResult{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Status:      s.Status,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
