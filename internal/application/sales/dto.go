package sales

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderInput contains the input for order creation
type CreateOrderInput struct {
	CustomerID uuid.UUID
	Remark     string
	Items      []CreateOrderItemInput
}

// CreateOrderItemInput describes one line of a new order
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// AddItemInput contains the input for adding an item to an order
type AddItemInput struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// UpdateItemQuantityInput contains the input for changing an item quantity
type UpdateItemQuantityInput struct {
	OrderID  uuid.UUID
	ItemID   uuid.UUID
	Quantity decimal.Decimal
}

// UpdateItemPriceInput contains the input for repricing an item
type UpdateItemPriceInput struct {
	OrderID   uuid.UUID
	ItemID    uuid.UUID
	UnitPrice decimal.Decimal
}

// RemoveItemInput contains the input for removing an item
type RemoveItemInput struct {
	OrderID uuid.UUID
	ItemID  uuid.UUID
}

// CancelOrderInput contains the input for cancelling an order
type CancelOrderInput struct {
	OrderID uuid.UUID
	Reason  string
}

// OrderItemResult is the outward-facing view of an order item
type OrderItemResult struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// OrderResult is the outward-facing view of an order
type OrderResult struct {
	ID              uuid.UUID
	OrderNumber     string
	CustomerID      uuid.UUID
	CustomerName    string
	OrderDate       time.Time
	Items           []OrderItemResult
	TotalAmount     decimal.Decimal
	Status          sales.OrderStatus
	Remark          string
	FullyInvoiced   bool
	InvoicedAmount  decimal.Decimal
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// orderResultFromDomain maps a domain order to the result view.
// Invoice figures are filled in separately by the service.
func orderResultFromDomain(o *sales.Order) *OrderResult {
	items := make([]OrderItemResult, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResult{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return &OrderResult{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		Remark:       o.Remark,
		ShippedAt:    o.ShippedAt,
		DeliveredAt:  o.DeliveredAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		Version:      o.Version,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
