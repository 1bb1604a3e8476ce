package persistence

import (
	"context"
	"testing"

	"github.com/bizdesk/backend/internal/domain/sales"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func newPersistedOrder(t *testing.T) *sales.Order {
	order, err := sales.NewOrder("SO-"+uuid.NewString()[:8], uuid.New(), "Acme Corp")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Widget", "PRD-001", decimal.NewFromInt(2), valueobject.NewMoneyUSDFromFloat(9.99))
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newPersistedOrder(t)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.OrderNumber, found.OrderNumber)
	assert.Equal(t, order.CustomerID, found.CustomerID)
	assert.Equal(t, sales.OrderStatusPending, found.Status)
	require.Len(t, found.Items, 1)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromFloat(19.98)))
	assert.True(t, found.Items[0].UnitPrice.Equal(decimal.NewFromFloat(9.99)))
}

func TestGormOrderRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newPersistedOrder(t)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByOrderNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByOrderNumber(ctx, "SO-MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_Save_SyncsRemovedItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newPersistedOrder(t)
	extra, err := order.AddItem(uuid.New(), "Gadget", "PRD-002", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(5.00))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, order.RemoveItem(extra.ID))
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1, "removed item row must be deleted")
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromFloat(19.98)))
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newPersistedOrder(t)
	require.NoError(t, repo.Save(ctx, order))

	t.Run("matching version succeeds", func(t *testing.T) {
		require.NoError(t, order.Process())
		require.NoError(t, repo.SaveWithLock(ctx, order))

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.OrderStatusProcessing, found.Status)
		assert.Equal(t, order.Version, found.Version)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)

		// another writer commits first
		require.NoError(t, order.Ship())
		require.NoError(t, repo.SaveWithLock(ctx, order))

		require.NoError(t, stale.Ship())
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormOrderRepository_FindByCustomer(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	for i := 0; i < 3; i++ {
		order, err := sales.NewOrder("SO-"+uuid.NewString()[:8], customerID, "Acme Corp")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, order))
	}
	require.NoError(t, repo.Save(ctx, newPersistedOrder(t)))

	orders, err := repo.FindByCustomer(ctx, customerID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	limited, err := repo.FindByCustomer(ctx, customerID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	count, err := repo.CountByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("deletes order and items", func(t *testing.T) {
		order := newPersistedOrder(t)
		require.NoError(t, repo.Save(ctx, order))

		require.NoError(t, repo.Delete(ctx, order.ID))

		_, err := repo.FindByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var itemCount int64
		require.NoError(t, db.Model(&models.OrderItemModel{}).
			Where("order_id = ?", order.ID).Count(&itemCount).Error)
		assert.Zero(t, itemCount)
	})

	t.Run("missing order", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})

	t.Run("refused while invoices reference the order", func(t *testing.T) {
		order := newPersistedOrder(t)
		require.NoError(t, repo.Save(ctx, order))

		invoice := models.InvoiceModel{}
		invoice.ID = uuid.New()
		invoice.Version = 1
		invoice.InvoiceNumber = "INV-" + uuid.NewString()[:8]
		invoice.OrderID = order.ID
		require.NoError(t, db.Create(&invoice).Error)

		err := repo.Delete(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrReferentialConflict)

		_, err = repo.FindByID(ctx, order.ID)
		assert.NoError(t, err, "order must survive the refused delete")
	})
}
