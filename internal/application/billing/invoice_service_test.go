package billing

import (
	"context"
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/billing"
	"github.com/bizdesk/backend/internal/domain/sales"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/persistence"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type invoiceServiceFixture struct {
	db      *gorm.DB
	service *InvoiceService
	order   *sales.Order
}

func newInvoiceServiceFixture(t *testing.T) *invoiceServiceFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	ctx := context.Background()
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)

	order, err := sales.NewOrder("SO-TEST-0001", uuid.New(), "Acme Corp")
	require.NoError(t, err)
	require.NoError(t, orderRepo.Save(ctx, order))

	return &invoiceServiceFixture{
		db:      db,
		service: NewInvoiceService(invoiceRepo, orderRepo, zap.NewNop()),
		order:   order,
	}
}

func (f *invoiceServiceFixture) createInvoice(t *testing.T, amount float64) *InvoiceResult {
	result, err := f.service.CreateInvoice(context.Background(), CreateInvoiceInput{
		OrderID: f.order.ID,
		Amount:  decimal.NewFromFloat(amount),
	})
	require.NoError(t, err)
	return result
}

// backdate pushes an invoice's stored due date into the past
func (f *invoiceServiceFixture) backdate(t *testing.T, invoiceID uuid.UUID) {
	require.NoError(t, f.db.Table("invoices").
		Where("id = ?", invoiceID).
		Update("due_date", time.Now().Add(-48*time.Hour)).Error)
}

func TestInvoiceService_CreateInvoice(t *testing.T) {
	t.Run("raises a draft against the order", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)

		result := f.createInvoice(t, 100.00)

		assert.NotEmpty(t, result.InvoiceNumber)
		assert.Equal(t, f.order.ID, result.OrderID)
		assert.Equal(t, billing.InvoiceStatusDraft, result.Status)
		assert.True(t, result.Amount.Equal(decimal.NewFromFloat(100.00)))
	})

	t.Run("partial billing is allowed", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)

		f.createInvoice(t, 10.00)
		f.createInvoice(t, 25.00)

		results, err := f.service.ListInvoicesByOrder(context.Background(), f.order.ID)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("honors an explicit due date", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		due := time.Now().Add(7 * 24 * time.Hour)

		result, err := f.service.CreateInvoice(context.Background(), CreateInvoiceInput{
			OrderID: f.order.ID,
			Amount:  decimal.NewFromFloat(50.00),
			DueDate: &due,
		})
		require.NoError(t, err)
		assert.WithinDuration(t, due, result.DueDate, time.Second)
	})

	t.Run("rejects unknown order", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)

		_, err := f.service.CreateInvoice(context.Background(), CreateInvoiceInput{
			OrderID: uuid.New(),
			Amount:  decimal.NewFromFloat(50.00),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects cancelled order", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		require.NoError(t, f.order.Cancel("customer withdrew"))
		require.NoError(t, f.service.orderRepo.Save(context.Background(), f.order))

		_, err := f.service.CreateInvoice(context.Background(), CreateInvoiceInput{
			OrderID: f.order.ID,
			Amount:  decimal.NewFromFloat(50.00),
		})
		assert.Error(t, err)
	})
}

func TestInvoiceService_IssueAndPay(t *testing.T) {
	f := newInvoiceServiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t, 100.00)

	issued, err := f.service.IssueInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusIssued, issued.Status)

	partial, err := f.service.AddPayment(ctx, AddPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromFloat(40.00),
		Method:    billing.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusIssued, partial.Status)
	assert.True(t, partial.RemainingBalance.Equal(decimal.NewFromFloat(60.00)))

	paid, err := f.service.AddPayment(ctx, AddPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromFloat(60.00),
		Method:    billing.PaymentMethodBankTransfer,
		Reference: "wire-42",
	})
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Len(t, paid.Payments, 2)

	// the paid status and payment list survive a reload
	reloaded, err := f.service.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPaid, reloaded.Status)
	assert.True(t, reloaded.PaidAmount.Equal(decimal.NewFromFloat(100.00)))
}

func TestInvoiceService_AddPayment_InvalidMethod(t *testing.T) {
	f := newInvoiceServiceFixture(t)
	invoice := f.createInvoice(t, 100.00)

	_, err := f.service.AddPayment(context.Background(), AddPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromFloat(10.00),
		Method:    billing.PaymentMethod("IOU"),
	})
	assert.Error(t, err)
}

func TestInvoiceService_RefreshesOverdueOnRead(t *testing.T) {
	f := newInvoiceServiceFixture(t)
	ctx := context.Background()

	invoice := f.createInvoice(t, 100.00)
	_, err := f.service.IssueInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	f.backdate(t, invoice.ID)

	result, err := f.service.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusOverdue, result.Status)
	assert.True(t, result.Overdue)

	// the refreshed status was persisted, not just computed
	var stored []string
	require.NoError(t, f.db.Table("invoices").
		Where("id = ?", invoice.ID).
		Pluck("status", &stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "OVERDUE", stored[0])
}

func TestInvoiceService_ListOverdueInvoices(t *testing.T) {
	f := newInvoiceServiceFixture(t)
	ctx := context.Background()

	pastDue := f.createInvoice(t, 100.00)
	_, err := f.service.IssueInvoice(ctx, pastDue.ID)
	require.NoError(t, err)
	f.backdate(t, pastDue.ID)

	current := f.createInvoice(t, 50.00)
	_, err = f.service.IssueInvoice(ctx, current.ID)
	require.NoError(t, err)

	results, err := f.service.ListOverdueInvoices(ctx)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, pastDue.ID, results[0].ID)
	assert.Equal(t, billing.InvoiceStatusOverdue, results[0].Status)
}

func TestInvoiceService_CancelInvoice(t *testing.T) {
	f := newInvoiceServiceFixture(t)
	ctx := context.Background()

	t.Run("cancels an unpaid invoice", func(t *testing.T) {
		invoice := f.createInvoice(t, 100.00)
		_, err := f.service.IssueInvoice(ctx, invoice.ID)
		require.NoError(t, err)

		result, err := f.service.CancelInvoice(ctx, CancelInvoiceInput{
			InvoiceID: invoice.ID,
			Reason:    "raised in error",
		})
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusCancelled, result.Status)
		assert.Equal(t, "raised in error", result.CancelReason)
	})

	t.Run("cannot cancel a paid invoice", func(t *testing.T) {
		invoice := f.createInvoice(t, 100.00)
		_, err := f.service.IssueInvoice(ctx, invoice.ID)
		require.NoError(t, err)
		_, err = f.service.AddPayment(ctx, AddPaymentInput{
			InvoiceID: invoice.ID,
			Amount:    decimal.NewFromFloat(100.00),
			Method:    billing.PaymentMethodCash,
		})
		require.NoError(t, err)

		_, err = f.service.CancelInvoice(ctx, CancelInvoiceInput{
			InvoiceID: invoice.ID,
			Reason:    "too late",
		})
		assert.Error(t, err)
	})
}

func TestInvoiceService_DeleteInvoice(t *testing.T) {
	f := newInvoiceServiceFixture(t)
	ctx := context.Background()

	invoice := f.createInvoice(t, 100.00)
	require.NoError(t, f.service.DeleteInvoice(ctx, invoice.ID))

	_, err := f.service.GetInvoice(ctx, invoice.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
