package partner

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/partner"
	"github.com/bizdesk/backend/internal/domain/sales"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	orderRepo    sales.OrderRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	orderRepo sales.OrderRepository,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

// CreateCustomer creates a new customer with a unique code
func (s *CustomerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerResult, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CODE_TAKEN", "Customer code is already taken")
	}

	customer, err := partner.NewCustomer(input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	if input.ContactName != "" || input.Phone != "" || input.Email != "" {
		if err := customer.SetContact(input.ContactName, input.Phone, input.Email); err != nil {
			return nil, err
		}
	}
	if input.Address != "" {
		customer.SetAddress(input.Address)
	}
	if input.Notes != "" {
		customer.SetNotes(input.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("code", customer.Code),
		zap.String("name", customer.Name))

	return customerResultFromDomain(customer), nil
}

// UpdateCustomer updates a customer's profile fields
func (s *CustomerService) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) (*CustomerResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := customer.Update(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.ContactName != nil || input.Phone != nil || input.Email != nil {
		contactName := customer.ContactName
		phone := customer.Phone
		email := customer.Email
		if input.ContactName != nil {
			contactName = *input.ContactName
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		if input.Email != nil {
			email = *input.Email
		}
		if err := customer.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		customer.SetAddress(*input.Address)
	}
	if input.Notes != nil {
		customer.SetNotes(*input.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customerResultFromDomain(customer), nil
}

// GetCustomer returns a customer with its order count
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orderCount, err := s.orderRepo.CountByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	result := customerResultFromDomain(customer)
	result.OrderCount = orderCount
	return result, nil
}

// GetCustomerByCode returns a customer by its unique code
func (s *CustomerService) GetCustomerByCode(ctx context.Context, code string) (*CustomerResult, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return customerResultFromDomain(customer), nil
}

// ListCustomers returns all customers, newest first
func (s *CustomerService) ListCustomers(ctx context.Context, limit, offset int) ([]CustomerResult, error) {
	customers, err := s.customerRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]CustomerResult, len(customers))
	for i := range customers {
		results[i] = *customerResultFromDomain(&customers[i])
	}
	return results, nil
}

// CountCustomers returns the total number of customers
func (s *CustomerService) CountCustomers(ctx context.Context) (int64, error) {
	return s.customerRepo.Count(ctx)
}

// ActivateCustomerre-enables a deactivated customer
func (s *CustomerService) ActivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := customer.Activate(); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, customer)
}

// DeactivateCustomer disables a customer without deleting the record
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := customer.Deactivate(); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, customer)
}

// DeleteCustomer removes a customer that has no orders
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}
