package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByCode finds a customer by its unique code
	FindByCode(ctx context.Context, code string) (*Customer, error)

	// FindAll returns all customers, newest first
	FindAll(ctx context.Context, limit, offset int) ([]Customer, error)

	// ExistsByCode checks if a customer code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer.
	// Returns ErrReferentialConflict if the customer still has orders.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of customers
	Count(ctx context.Context) (int64, error)
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByCode finds a supplier by its unique code
	FindByCode(ctx context.Context, code string) (*Supplier, error)

	// FindAll returns all suppliers, newest first
	FindAll(ctx context.Context, limit, offset int) ([]Supplier, error)

	// ExistsByCode checks if a supplier code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete deletes a supplier.
	// Returns ErrReferentialConflict if the supplier still has products.
	Delete(ctx context.Context, id uuid.UUID) error
}
