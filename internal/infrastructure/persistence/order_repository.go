package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizdesk/backend/internal/domain/sales"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its unique number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*sales.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds all orders for a customer, newest first
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]sales.Order, error) {
	var orderModels []models.OrderModel
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("order_date DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]sales.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// FindAll finds all orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, limit, offset int) ([]sales.Order, error) {
	var orderModels []models.OrderModel
	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("order_date DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]sales.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save creates or updates an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		return r.syncItems(tx, model)
	})
}

// SaveWithLock saves with optimistic locking (version check).
// The caller's in-memory version must match the stored one; a mismatch
// means another transaction saved the order first.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *sales.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", order.ID, order.Version-1).
			Updates(map[string]interface{}{
				"order_number":  model.OrderNumber,
				"customer_id":   model.CustomerID,
				"customer_name": model.CustomerName,
				"order_date":    model.OrderDate,
				"total_amount":  model.TotalAmount,
				"status":        model.Status,
				"remark":        model.Remark,
				"shipped_at":    model.ShippedAt,
				"delivered_at":  model.DeliveredAt,
				"cancelled_at":  model.CancelledAt,
				"cancel_reason": model.CancelReason,
				"version":       model.Version,
				"updated_at":    time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.syncItems(tx, model)
	})
}

// syncItems reconciles stored items with the aggregate's current item list
func (r *GormOrderRepository) syncItems(tx *gorm.DB, model *models.OrderModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", model.ID).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].OrderID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an order and its items.
// Deletion is refused while invoices still reference the order.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoiceCount int64
		if err := tx.Model(&models.InvoiceModel{}).
			Where("order_id = ?", id).
			Count(&invoiceCount).Error; err != nil {
			return err
		}
		if invoiceCount > 0 {
			return shared.ErrReferentialConflict
		}

		if err := tx.Where("order_id = ?", id).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByCustomer counts orders for a customer
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ sales.OrderRepository = (*GormOrderRepository)(nil)
