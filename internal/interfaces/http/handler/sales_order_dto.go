package handler

import (
	"time"

	salesapp "github.com/bizdesk/backend/internal/application/sales"
	"github.com/shopspring/decimal"
)

// =====================
// Order Request DTOs
// =====================

// CreateOrderItemRequest represents one line of a new order
// @Description One order line referencing a product
type CreateOrderItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required" example:"2"`
}

// CreateOrderRequest represents a request to create a new order
// @Description Request body for creating a new sales order
type CreateOrderRequest struct {
	CustomerID string                   `json:"customer_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Remark     string                   `json:"remark" binding:"max=500"`
	Items      []CreateOrderItemRequest `json:"items" binding:"dive"`
}

// AddOrderItemRequest represents a request to add an item to an order
// @Description Request body for adding an item to an order
type AddOrderItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required" example:"1"`
}

// UpdateItemQuantityRequest represents a request to change an item quantity
// @Description Request body for changing an order item's quantity
type UpdateItemQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required" example:"3"`
}

// UpdateItemPriceRequest represents a request to reprice an order item
// @Description Request body for overriding an order item's unit price
type UpdateItemPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required" example:"17.50"`
}

// CancelOrderRequest represents a request to cancel an order
// @Description Request body for cancelling an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500" example:"Customer withdrew"`
}

// =====================
// Order Response DTOs
// =====================

// OrderItemResponse represents an order item in API responses
// @Description Order line with price snapshot taken at add time
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name" example:"Steel Widget"`
	ProductCode string          `json:"product_code" example:"PRD-001"`
	Quantity    decimal.Decimal `json:"quantity" example:"2"`
	UnitPrice   decimal.Decimal `json:"unit_price" example:"19.99"`
	Amount      decimal.Decimal `json:"amount" example:"39.98"`
}

// OrderResponse represents an order in API responses
// @Description Sales order details returned by the API
type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number" example:"SO-20260301-A1B2C3D4"`
	CustomerID     string              `json:"customer_id"`
	CustomerName   string              `json:"customer_name" example:"Acme Corp"`
	OrderDate      time.Time           `json:"order_date"`
	Items          []OrderItemResponse `json:"items"`
	TotalAmount    decimal.Decimal     `json:"total_amount" example:"39.98"`
	Status         string              `json:"status" example:"PENDING" enums:"PENDING,PROCESSING,SHIPPED,DELIVERED,CANCELLED"`
	Remark         string              `json:"remark"`
	FullyInvoiced  bool                `json:"fully_invoiced" example:"false"`
	InvoicedAmount decimal.Decimal     `json:"invoiced_amount" example:"0"`
	ShippedAt      *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason   string              `json:"cancel_reason,omitempty"`
	Version        int                 `json:"version" example:"1"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func orderResponseFrom(r *salesapp.OrderResult) OrderResponse {
	items := make([]OrderItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return OrderResponse{
		ID:             r.ID.String(),
		OrderNumber:    r.OrderNumber,
		CustomerID:     r.CustomerID.String(),
		CustomerName:   r.CustomerName,
		OrderDate:      r.OrderDate,
		Items:          items,
		TotalAmount:    r.TotalAmount,
		Status:         string(r.Status),
		Remark:         r.Remark,
		FullyInvoiced:  r.FullyInvoiced,
		InvoicedAmount: r.InvoicedAmount,
		ShippedAt:      r.ShippedAt,
		DeliveredAt:    r.DeliveredAt,
		CancelledAt:    r.CancelledAt,
		CancelReason:   r.CancelReason,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func orderResponsesFrom(results []salesapp.OrderResult) []OrderResponse {
	responses := make([]OrderResponse, len(results))
	for i := range results {
		responses[i] = orderResponseFrom(&results[i])
	}
	return responses
}
