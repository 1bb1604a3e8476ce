package handler

import (
	"time"

	catalogapp "github.com/bizdesk/backend/internal/application/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
// @Description Request body for creating a new product
type CreateProductRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=50" example:"PRD-001"`
	Name        string          `json:"name" binding:"required,min=1,max=200" example:"Steel Widget"`
	Price       decimal.Decimal `json:"price" binding:"required" example:"19.99"`
	Category    string          `json:"category" binding:"max=100" example:"hardware"`
	SupplierID  *string         `json:"supplier_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Description string          `json:"description" binding:"max=1000"`
}

// UpdateProductRequest represents a request to update a product
// @Description Request body for updating a product
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	SupplierID  *string `json:"supplier_id" binding:"omitempty,uuid"`
}

// UpdatePriceRequest represents a request to change a product price
// @Description Request body for changing a product's unit price
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required" example:"24.50"`
}

// AdjustStockRequest represents a request to adjust stock on hand
// @Description Request body for adjusting a product's stock quantity
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required" example:"-5"`
}

// ProductResponse represents a product in API responses
// @Description Product details returned by the API
type ProductResponse struct {
	ID            string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code          string          `json:"code" example:"PRD-001"`
	Name          string          `json:"name" example:"Steel Widget"`
	Price         decimal.Decimal `json:"price" example:"19.99"`
	StockQuantity int             `json:"stock_quantity" example:"120"`
	Category      string          `json:"category" example:"hardware"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	Description   string          `json:"description"`
	InStock       bool            `json:"in_stock" example:"true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func productResponseFrom(r *catalogapp.ProductResult) ProductResponse {
	resp := ProductResponse{
		ID:            r.ID.String(),
		Code:          r.Code,
		Name:          r.Name,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Category:      r.Category,
		Description:   r.Description,
		InStock:       r.InStock,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.SupplierID != nil {
		supplierID := r.SupplierID.String()
		resp.SupplierID = &supplierID
	}
	return resp
}

func productResponsesFrom(results []catalogapp.ProductResult) []ProductResponse {
	responses := make([]ProductResponse, len(results))
	for i := range results {
		responses[i] = productResponseFrom(&results[i])
	}
	return responses
}
