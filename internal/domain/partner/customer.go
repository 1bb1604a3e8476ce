package partner

import (
	"strings"
	"time"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/validation"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a customer in the partner context.
// It is the aggregate root for customer-related operations. Orders
// reference the customer by ID only; the customer does not own them.
type Customer struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	ContactName  string
	Phone        string
	Email        string
	Address      string
	Status       CustomerStatus
	RegisteredAt time.Time
	Notes        string
}

// NewCustomer creates a new customer with required fields
func NewCustomer(code, name string) (*Customer, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if !validation.NotBlank(name) {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if !validation.MaxLen(name, 200) {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		Status:            CustomerStatusActive,
		RegisteredAt:      time.Now(),
	}, nil
}

// Update updates the customer name
func (c *Customer) Update(name string) error {
	if !validation.NotBlank(name) {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if !validation.MaxLen(name, 200) {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(contactName, phone, email string) error {
	if contactName != "" && !validation.MaxLen(contactName, 100) {
		return shared.NewDomainError("INVALID_CONTACT", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && !validation.IsPhone(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	if email != "" && !validation.IsEmail(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	c.ContactName = strings.TrimSpace(contactName)
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the customer's address
func (c *Customer) SetAddress(address string) {
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetNotes sets free-form notes on the customer
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validateCustomerCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	if !validation.IsAlphanumeric(strings.ReplaceAll(code, "-", "")) {
		return shared.NewDomainError("INVALID_CODE", "Customer code can only contain letters, numbers, and hyphens")
	}
	return nil
}
