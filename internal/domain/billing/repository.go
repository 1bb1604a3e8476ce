package billing

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice persistence.
// Payments are stored within the invoice row and always travel with it.
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNumber finds an invoice by its unique number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindByOrder finds all invoices raised against an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Invoice, error)

	// FindAll returns all invoices, newest first
	FindAll(ctx context.Context, limit, offset int) ([]Invoice, error)

	// FindOverdue returns non-terminal invoices whose due date has passed
	FindOverdue(ctx context.Context) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with an optimistic version check.
	// Returns ErrConcurrencyConflict if the stored version has moved on.
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// Delete deletes an invoice and its payments
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByOrder counts invoices raised against an order
	CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}
