package catalog

import (
	"strings"
	"testing"

	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	product, err := NewProduct("prd-001", "Widget", valueobject.NewMoneyUSDFromFloat(9.99))
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with uppercased code", func(t *testing.T) {
		product := createTestProduct(t)

		assert.Equal(t, "PRD-001", product.Code)
		assert.Equal(t, "Widget", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(9.99)))
		assert.Equal(t, 0, product.StockQuantity)
		assert.False(t, product.InStock())
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		_, err := NewProduct("PRD-001", "Freebie", valueobject.ZeroUSD())
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		code    string
		product string
		price   float64
	}{
		{"empty code", "", "Widget", 9.99},
		{"code too long", strings.Repeat("P", 51), "Widget", 9.99},
		{"empty name", "PRD-001", "", 9.99},
		{"negative price", "PRD-001", "Widget", -0.01},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.code, tt.product, valueobject.NewMoneyUSDFromFloat(tt.price))
			assert.Error(t, err)
		})
	}
}

func TestProduct_UpdatePrice(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.UpdatePrice(valueobject.NewMoneyUSDFromFloat(12.50)))
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(12.50)))

	err := product.UpdatePrice(valueobject.NewMoneyUSDFromFloat(-1.00))
	assert.Error(t, err)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(12.50)))
}

func TestProduct_AdjustStock(t *testing.T) {
	product := createTestProduct(t)

	product.AdjustStock(10)
	assert.Equal(t, 10, product.StockQuantity)
	assert.True(t, product.InStock())

	product.AdjustStock(-4)
	assert.Equal(t, 6, product.StockQuantity)

	// overselling is allowed, stock may go negative
	product.AdjustStock(-10)
	assert.Equal(t, -4, product.StockQuantity)
	assert.False(t, product.InStock())
}

func TestProduct_SetSupplier(t *testing.T) {
	product := createTestProduct(t)
	require.Nil(t, product.SupplierID)

	supplierID := uuid.New()
	product.SetSupplier(&supplierID)
	require.NotNil(t, product.SupplierID)
	assert.Equal(t, supplierID, *product.SupplierID)

	product.SetSupplier(nil)
	assert.Nil(t, product.SupplierID)
}

func TestProduct_SetCategory(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.SetCategory("Hardware"))
	assert.Equal(t, "Hardware", product.Category)

	assert.Error(t, product.SetCategory(strings.Repeat("c", 101)))

	require.NoError(t, product.SetCategory(""))
	assert.Empty(t, product.Category)
}
