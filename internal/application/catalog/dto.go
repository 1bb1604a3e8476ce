package catalog

import (
	"time"

	"github.com/bizdesk/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput contains the input for product creation
type CreateProductInput struct {
	Code        string
	Name        string
	Price       decimal.Decimal
	Category    string
	SupplierID  *uuid.UUID
	Description string
}

// UpdateProductInput contains the input for product updates
type UpdateProductInput struct {
	ProductID   uuid.UUID
	Name        *string
	Description *string
	Category    *string
	SupplierID  *uuid.UUID
}

// UpdatePriceInput contains the input for a price change
type UpdatePriceInput struct {
	ProductID uuid.UUID
	Price     decimal.Decimal
}

// AdjustStockInput contains the input for a stock adjustment
type AdjustStockInput struct {
	ProductID uuid.UUID
	Delta     int
}

// ProductResult is the outward-facing view of a product
type ProductResult struct {
	ID            uuid.UUID
	Code          string
	Name          string
	Price         decimal.Decimal
	StockQuantity int
	Category      string
	SupplierID    *uuid.UUID
	Description   string
	InStock       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func productResultFromDomain(p *catalog.Product) *ProductResult {
	return &ProductResult{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		SupplierID:    p.SupplierID,
		Description:   p.Description,
		InStock:       p.InStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
