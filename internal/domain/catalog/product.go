package catalog

import (
	"strings"
	"time"

	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/validation"
	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product.
// The supplier is a weak back-reference; the catalog does not own
// supplier lifecycle. Stock may go negative when overselling is allowed,
// the domain does not enforce a floor.
type Product struct {
	shared.BaseAggregateRoot
	Code          string
	Name          string
	Price         decimal.Decimal
	StockQuantity int
	Category      string
	SupplierID    *uuid.UUID
	Description   string
}

// NewProduct creates a new product with required fields
func NewProduct(code, name string, price valueobject.Money) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	if !validation.NotBlank(name) {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !validation.MaxLen(name, 200) {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              strings.TrimSpace(name),
		Price:             price.Amount(),
	}, nil
}

// Update updates the product name and description
func (p *Product) Update(name, description string) error {
	if !validation.NotBlank(name) {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !validation.MaxLen(name, 200) {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdatePrice sets a new list price.
// Existing order items keep the unit price snapshotted at add time.
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AdjustStock adds delta to the stock quantity. Delta may be negative;
// the resulting quantity is allowed to go below zero.
func (p *Product) AdjustStock(delta int) {
	p.StockQuantity += delta
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetCategory sets the product category
func (p *Product) SetCategory(category string) error {
	if category != "" && !validation.MaxLen(category, 100) {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}

	p.Category = strings.TrimSpace(category)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetSupplier sets the supplier back-reference
func (p *Product) SetSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// GetPriceMoney returns the list price as Money
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// InStock returns true if the stock quantity is positive
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
