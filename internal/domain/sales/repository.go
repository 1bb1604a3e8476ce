package sales

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence.
// Orders are always loaded with their items: the aggregate is the
// consistency boundary and partial loads would break total recomputation.
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its unique number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByCustomer finds all orders for a customer, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]Order, error)

	// FindAll returns all orders, newest first
	FindAll(ctx context.Context, limit, offset int) ([]Order, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with an optimistic version check.
	// Returns ErrConcurrencyConflict if the stored version has moved on.
	SaveWithLock(ctx context.Context, order *Order) error

	// Delete deletes an order and its items.
	// Returns ErrReferentialConflict if invoices reference the order.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCustomer counts orders for a customer
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
