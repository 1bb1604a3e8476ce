package partner

import (
	"strings"
	"time"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/validation"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a goods supplier.
// Products reference the supplier by ID; the supplier does not own them.
type Supplier struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Status      SupplierStatus
	Notes       string
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(code, name string) (*Supplier, error) {
	if err := validateSupplierCode(code); err != nil {
		return nil, err
	}
	if !validation.NotBlank(name) {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if !validation.MaxLen(name, 200) {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		Status:            SupplierStatusActive,
	}, nil
}

// Update updates the supplier name
func (s *Supplier) Update(name string) error {
	if !validation.NotBlank(name) {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if !validation.MaxLen(name, 200) {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	s.Name = strings.TrimSpace(name)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email string) error {
	if contactName != "" && !validation.MaxLen(contactName, 100) {
		return shared.NewDomainError("INVALID_CONTACT", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && !validation.IsPhone(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	if email != "" && !validation.IsEmail(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	s.ContactName = strings.TrimSpace(contactName)
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.ToLower(strings.TrimSpace(email))
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the supplier's address
func (s *Supplier) SetAddress(address string) {
	s.Address = strings.TrimSpace(address)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetNotes updates the free-form notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

func validateSupplierCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot exceed 50 characters")
	}
	if !validation.IsAlphanumeric(strings.ReplaceAll(code, "-", "")) {
		return shared.NewDomainError("INVALID_CODE", "Supplier code can only contain letters, numbers, and hyphens")
	}
	return nil
}
