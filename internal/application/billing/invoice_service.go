package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bizdesk/backend/internal/domain/billing"
	"github.com/bizdesk/backend/internal/domain/sales"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	orderRepo   sales.OrderRepository
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	orderRepo sales.OrderRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// CreateInvoice raises a draft invoice against an order. The invoice
// amount is independent of the order total: partial billing is allowed
// and over-invoicing is not rejected here.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*InvoiceResult, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.IsCancelled() {
		return nil, shared.NewDomainError("ORDER_CANCELLED", "Cannot invoice a cancelled order")
	}

	amount, err := valueobject.NewMoney(input.Amount, valueobject.USD)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(generateInvoiceNumber(), order.ID, amount)
	if err != nil {
		return nil, err
	}
	if input.DueDate != nil {
		if err := invoice.SetDueDate(*input.DueDate); err != nil {
			return nil, err
		}
	}
	if input.Remark != "" {
		invoice.SetRemark(input.Remark)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("order_number", order.OrderNumber),
		zap.String("amount", invoice.Amount.String()))

	return invoiceResultFromDomain(invoice), nil
}

// GetInvoice returns a single invoice. The stored status is refreshed
// against the current clock first, so an invoice that tipped past its
// due date since the last write reads as overdue.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResult, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.refreshStatus(ctx, invoice)
	return invoiceResultFromDomain(invoice), nil
}

// GetInvoiceByNumber returns an invoice by its unique number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*InvoiceResult, error) {
	invoice, err := s.invoiceRepo.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	s.refreshStatus(ctx, invoice)
	return invoiceResultFromDomain(invoice), nil
}

// ListInvoices returns all invoices, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, limit, offset int) ([]InvoiceResult, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toResults(ctx, invoices), nil
}

// ListInvoicesByOrder returns all invoices raised against an order
func (s *InvoiceService) ListInvoicesByOrder(ctx context.Context, orderID uuid.UUID) ([]InvoiceResult, error) {
	invoices, err := s.invoiceRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.toResults(ctx, invoices), nil
}

// ListOverdueInvoices returns invoices whose due date has passed
func (s *InvoiceService) ListOverdueInvoices(ctx context.Context) ([]InvoiceResult, error) {
	invoices, err := s.invoiceRepo.FindOverdue(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResults(ctx, invoices), nil
}

// IssueInvoice moves a draft invoice into circulation
func (s *InvoiceService) IssueInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResult, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Issue(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice issued", zap.String("invoice_number", invoice.InvoiceNumber))
	return invoiceResultFromDomain(invoice), nil
}

// CancelInvoice cancels an invoice that has not been paid
func (s *InvoiceService) CancelInvoice(ctx context.Context, input CancelInvoiceInput) (*InvoiceResult, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Cancel(input.Reason); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice cancelled",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("reason", input.Reason))
	return invoiceResultFromDomain(invoice), nil
}

// AddPayment applies a payment to an invoice and recomputes its status.
// The write uses a version check: two payments racing on the same
// invoice must not overwrite each other's payment list.
func (s *InvoiceService) AddPayment(ctx context.Context, input AddPaymentInput) (*InvoiceResult, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(input.Amount, valueobject.USD)
	if err != nil {
		return nil, err
	}

	payment, err := invoice.AddPayment(amount, input.Method, input.Reference)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Payment applied",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("status", invoice.Status.String()))

	return invoiceResultFromDomain(invoice), nil
}

// DeleteInvoice removes an invoice and its payments
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}

// refreshStatus recomputes the invoice status against the current clock
// and persists it when it moved. Persistence failure here is not fatal:
// the caller still sees the freshly computed status.
func (s *InvoiceService) refreshStatus(ctx context.Context, invoice *billing.Invoice) {
	before := invoice.Status
	invoice.UpdateStatus()
	if invoice.Status == before {
		return
	}
	invoice.IncrementVersion()
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		s.logger.Warn("Failed to persist refreshed invoice status",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Error(err))
	}
}

func (s *InvoiceService) toResults(ctx context.Context, invoices []billing.Invoice) []InvoiceResult {
	results := make([]InvoiceResult, len(invoices))
	for i := range invoices {
		s.refreshStatus(ctx, &invoices[i])
		results[i] = *invoiceResultFromDomain(&invoices[i])
	}
	return results
}

// generateInvoiceNumber produces a unique, human-readable invoice number
func generateInvoiceNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), suffix)
}
