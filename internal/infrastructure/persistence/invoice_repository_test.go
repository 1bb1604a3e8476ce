package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bizdesk/backend/internal/domain/billing"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersistedInvoice(t *testing.T, amount float64) *billing.Invoice {
	invoice, err := billing.NewInvoice("INV-"+uuid.NewString()[:8], uuid.New(), valueobject.NewMoneyUSDFromFloat(amount))
	require.NoError(t, err)
	return invoice
}

func TestGormInvoiceRepository_SaveAndFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newPersistedInvoice(t, 100.00)
	require.NoError(t, repo.Save(ctx, invoice))

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)

	assert.Equal(t, invoice.InvoiceNumber, found.InvoiceNumber)
	assert.Equal(t, invoice.OrderID, found.OrderID)
	assert.Equal(t, billing.InvoiceStatusDraft, found.Status)
	assert.True(t, found.Amount.Equal(decimal.NewFromFloat(100.00)))
	assert.Empty(t, found.Payments)
}

func TestGormInvoiceRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormInvoiceRepository_PaymentsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newPersistedInvoice(t, 100.00)
	require.NoError(t, invoice.Issue())
	_, err := invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(40.00), billing.PaymentMethodCash, "")
	require.NoError(t, err)
	_, err = invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(60.00), billing.PaymentMethodBankTransfer, "wire-42")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, invoice))

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)

	require.Len(t, found.Payments, 2)
	assert.Equal(t, billing.InvoiceStatusPaid, found.Status)
	assert.True(t, found.GetPaidAmount().Equal(decimal.NewFromFloat(100.00)))
	assert.Equal(t, "wire-42", found.Payments[1].Reference)
	assert.Equal(t, billing.PaymentMethodBankTransfer, found.Payments[1].Method)
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newPersistedInvoice(t, 100.00)
	require.NoError(t, invoice.Issue())
	require.NoError(t, repo.Save(ctx, invoice))

	t.Run("matching version succeeds", func(t *testing.T) {
		_, err := invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(40.00), billing.PaymentMethodCash, "")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, invoice))

		found, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Len(t, found.Payments, 1)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)

		// a concurrent payment commits first
		_, err = invoice.AddPayment(valueobject.NewMoneyUSDFromFloat(10.00), billing.PaymentMethodCash, "")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, invoice))

		_, err = stale.AddPayment(valueobject.NewMoneyUSDFromFloat(20.00), billing.PaymentMethodCash, "")
		require.NoError(t, err)
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		// the losing payment must not be visible
		found, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Len(t, found.Payments, 2)
	})
}

func TestGormInvoiceRepository_FindByOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	for i := 0; i < 2; i++ {
		invoice, err := billing.NewInvoice("INV-"+uuid.NewString()[:8], orderID, valueobject.NewMoneyUSDFromFloat(50.00))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, invoice))
	}
	require.NoError(t, repo.Save(ctx, newPersistedInvoice(t, 10.00)))

	invoices, err := repo.FindByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, invoices, 2)

	count, err := repo.CountByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormInvoiceRepository_FindOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	pastDue := newPersistedInvoice(t, 100.00)
	require.NoError(t, pastDue.Issue())
	require.NoError(t, repo.Save(ctx, pastDue))
	// push the stored due date into the past; the status column still says ISSUED
	require.NoError(t, db.Table("invoices").
		Where("id = ?", pastDue.ID).
		Update("due_date", time.Now().Add(-48*time.Hour)).Error)

	current := newPersistedInvoice(t, 100.00)
	require.NoError(t, current.Issue())
	require.NoError(t, repo.Save(ctx, current))

	draft := newPersistedInvoice(t, 100.00)
	require.NoError(t, repo.Save(ctx, draft))

	overdue, err := repo.FindOverdue(ctx)
	require.NoError(t, err)

	require.Len(t, overdue, 1, "only issued invoices past their due date")
	assert.Equal(t, pastDue.ID, overdue[0].ID)
}

func TestGormInvoiceRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newPersistedInvoice(t, 100.00)
	require.NoError(t, repo.Save(ctx, invoice))

	require.NoError(t, repo.Delete(ctx, invoice.ID))

	_, err := repo.FindByID(ctx, invoice.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}
