package catalog

import (
	"context"

	"github.com/bizdesk/backend/internal/domain/catalog"
	"github.com/bizdesk/backend/internal/domain/partner"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// CreateProduct creates a new product with a unique code
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductResult, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CODE_TAKEN", "Product code is already taken")
	}

	if input.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *input.SupplierID); err != nil {
			return nil, err
		}
	}

	price, err := valueobject.NewMoney(input.Price, valueobject.USD)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(input.Code, input.Name, price)
	if err != nil {
		return nil, err
	}
	if input.Category != "" {
		if err := product.SetCategory(input.Category); err != nil {
			return nil, err
		}
	}
	if input.SupplierID != nil {
		product.SetSupplier(input.SupplierID)
	}
	if input.Description != "" {
		if err := product.Update(product.Name, input.Description); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("code", product.Code),
		zap.String("name", product.Name),
		zap.String("price", product.Price.String()))

	return productResultFromDomain(product), nil
}

// UpdateProduct updates a product's descriptive fields
func (s *ProductService) UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil || input.Description != nil {
		name := product.Name
		description := product.Description
		if input.Name != nil {
			name = *input.Name
		}
		if input.Description != nil {
			description = *input.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}
	if input.Category != nil {
		if err := product.SetCategory(*input.Category); err != nil {
			return nil, err
		}
	}
	if input.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *input.SupplierID); err != nil {
			return nil, err
		}
		product.SetSupplier(input.SupplierID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return productResultFromDomain(product), nil
}

// UpdatePrice changes the product's list price. Existing order items
// keep their snapshotted price; only future orders see the new one.
func (s *ProductService) UpdatePrice(ctx context.Context, input UpdatePriceInput) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	price, err := valueobject.NewMoney(input.Price, valueobject.USD)
	if err != nil {
		return nil, err
	}
	if err := product.UpdatePrice(price); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product price changed",
		zap.String("code", product.Code),
		zap.String("price", product.Price.String()))

	return productResultFromDomain(product), nil
}

// AdjustStock applies a signed stock delta. Stock may go negative;
// oversells are a business reality the ledger has to record.
func (s *ProductService) AdjustStock(ctx context.Context, input AdjustStockInput) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	product.AdjustStock(input.Delta)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return productResultFromDomain(product), nil
}

// GetProduct returns a single product
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResult, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productResultFromDomain(product), nil
}

// GetProductByCode returns a product by its unique code
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*ProductResult, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return productResultFromDomain(product), nil
}

// ListProducts returns all products, newest first
func (s *ProductService) ListProducts(ctx context.Context, limit, offset int) ([]ProductResult, error) {
	products, err := s.productRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]ProductResult, len(products))
	for i := range products {
		results[i] = *productResultFromDomain(&products[i])
	}
	return results, nil
}

// ListProductsBySupplier returns all products referencing a supplier
func (s *ProductService) ListProductsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]ProductResult, error) {
	products, err := s.productRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	results := make([]ProductResult, len(products))
	for i := range products {
		results[i] = *productResultFromDomain(&products[i])
	}
	return results, nil
}

// DeleteProduct removes a product no order items reference
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
