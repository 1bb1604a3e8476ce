package partner

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/partner"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService handles supplier operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// CreateSupplier creates a new supplier with a unique code
func (s *SupplierService) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierResult, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CODE_TAKEN", "Supplier code is already taken")
	}

	supplier, err := partner.NewSupplier(input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	if input.ContactName != "" || input.Phone != "" || input.Email != "" {
		if err := supplier.SetContact(input.ContactName, input.Phone, input.Email); err != nil {
			return nil, err
		}
	}
	if input.Address != "" {
		supplier.SetAddress(input.Address)
	}
	if input.Notes != "" {
		supplier.SetNotes(input.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("Supplier created",
		zap.String("code", supplier.Code),
		zap.String("name", supplier.Name))

	return supplierResultFromDomain(supplier), nil
}

// UpdateSupplier updates a supplier's profile fields
func (s *SupplierService) UpdateSupplier(ctx context.Context, input UpdateSupplierInput) (*SupplierResult, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := supplier.Update(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.ContactName != nil || input.Phone != nil || input.Email != nil {
		contactName := supplier.ContactName
		phone := supplier.Phone
		email := supplier.Email
		if input.ContactName != nil {
			contactName = *input.ContactName
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		if input.Email != nil {
			email = *input.Email
		}
		if err := supplier.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		supplier.SetAddress(*input.Address)
	}
	if input.Notes != nil {
		supplier.SetNotes(*input.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return supplierResultFromDomain(supplier), nil
}

// GetSupplier returns a single supplier
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*SupplierResult, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return supplierResultFromDomain(supplier), nil
}

// GetSupplierByCode returns a supplier by its unique code
func (s *SupplierService) GetSupplierByCode(ctx context.Context, code string) (*SupplierResult, error) {
	supplier, err := s.supplierRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return supplierResultFromDomain(supplier), nil
}

// ListSuppliers returns all suppliers, newest first
func (s *SupplierService) ListSuppliers(ctx context.Context, limit, offset int) ([]SupplierResult, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]SupplierResult, len(suppliers))
	for i := range suppliers {
		results[i] = *supplierResultFromDomain(&suppliers[i])
	}
	return results, nil
}

// ActivateSupplier re-enables a deactivated supplier
func (s *SupplierService) ActivateSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := supplier.Activate(); err != nil {
		return err
	}
	return s.supplierRepo.Save(ctx, supplier)
}

// DeactivateSupplier disables a supplier without deleting the record
func (s *SupplierService) DeactivateSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := supplier.Deactivate(); err != nil {
		return err
	}
	return s.supplierRepo.Save(ctx, supplier)
}

// DeleteSupplier removes a supplier that has no products
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Supplier deleted", zap.String("supplier_id", id.String()))
	return nil
}
