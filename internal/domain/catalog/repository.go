package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its unique code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll returns all products, newest first
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)

	// FindBySupplier returns all products referencing a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Product, error)

	// ExistsByCode checks if a product code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// CountBySupplier counts products referencing a supplier
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product.
	// Returns ErrReferentialConflict if order items reference the product.
	Delete(ctx context.Context, id uuid.UUID) error
}
