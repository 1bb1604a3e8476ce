package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bizdesk/backend/internal/domain/billing"
	"github.com/bizdesk/backend/internal/domain/catalog"
	"github.com/bizdesk/backend/internal/domain/partner"
	"github.com/bizdesk/backend/internal/domain/sales"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/bizdesk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles order operations
type OrderService struct {
	orderRepo    sales.OrderRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	invoiceRepo  billing.InvoiceRepository
	logger       *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo sales.OrderRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	invoiceRepo billing.InvoiceRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		logger:       logger,
	}
}

// CreateOrder creates a new order for a customer. Item unit prices are
// snapshotted from the current product price at creation time.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot create orders for an inactive customer")
	}

	order, err := sales.NewOrder(generateOrderNumber(), customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}
	if input.Remark != "" {
		order.SetRemark(input.Remark)
	}

	for _, itemInput := range input.Items {
		if err := s.addProductItem(ctx, order, itemInput.ProductID, itemInput.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_id", customer.ID.String()),
		zap.String("total", order.TotalAmount.String()))

	return orderResultFromDomain(order), nil
}

// GetOrder returns an order with its invoicing state
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResult, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withInvoiceFigures(ctx, order)
}

// GetOrderByNumber returns an order by its unique number
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*OrderResult, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.withInvoiceFigures(ctx, order)
}

// ListOrders returns all orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]OrderResult, error) {
	orders, err := s.orderRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]OrderResult, len(orders))
	for i := range orders {
		results[i] = *orderResultFromDomain(&orders[i])
	}
	return results, nil
}

// ListOrdersByCustomer returns all orders for a customer, newest first
func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]OrderResult, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]OrderResult, len(orders))
	for i := range orders {
		results[i] = *orderResultFromDomain(&orders[i])
	}
	return results, nil
}

// AddItem adds a product line to a pending order
func (s *OrderService) AddItem(ctx context.Context, input AddItemInput) (*OrderResult, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if err := s.addProductItem(ctx, order, input.ProductID, input.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	return orderResultFromDomain(order), nil
}

// UpdateItemQuantity changes an item's quantity and recomputes the total
func (s *OrderService) UpdateItemQuantity(ctx context.Context, input UpdateItemQuantityInput) (*OrderResult, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateItemQuantity(input.ItemID, input.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	return orderResultFromDomain(order), nil
}

// UpdateItemPrice reprices an item line and recomputes the total.
// The order keeps its own price; the catalog price is untouched.
func (s *OrderService) UpdateItemPrice(ctx context.Context, input UpdateItemPriceInput) (*OrderResult, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	price := valueobject.NewMoneyUSD(input.UnitPrice)
	if err := order.UpdateItemPrice(input.ItemID, price); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	return orderResultFromDomain(order), nil
}

// RemoveItem removes an item line and recomputes the total
func (s *OrderService) RemoveItem(ctx context.Context, input RemoveItemInput) (*OrderResult, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(input.ItemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	return orderResultFromDomain(order), nil
}

// ProcessOrder moves a pending order into processing
func (s *OrderService) ProcessOrder(ctx context.Context, id uuid.UUID) (*OrderResult, error) {
	return s.transition(ctx, id, func(o *sales.Order) error { return o.Process() })
}

// ShipOrder marks a processing order as shipped
func (s *OrderService) ShipOrder(ctx context.Context, id uuid.UUID) (*OrderResult, error) {
	return s.transition(ctx, id, func(o *sales.Order) error { return o.Ship() })
}

// DeliverOrder marks a shipped order as delivered
func (s *OrderService) DeliverOrder(ctx context.Context, id uuid.UUID) (*OrderResult, error) {
	return s.transition(ctx, id, func(o *sales.Order) error { return o.Deliver() })
}

// CancelOrder cancels an order that has not shipped yet
func (s *OrderService) CancelOrder(ctx context.Context, input CancelOrderInput) (*OrderResult, error) {
	return s.transition(ctx, input.OrderID, func(o *sales.Order) error { return o.Cancel(input.Reason) })
}

// DeleteOrder removes an order that has no invoices
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

// transition applies a status mutation and saves with a version check
func (s *OrderService) transition(ctx context.Context, id uuid.UUID, mutate func(*sales.Order) error) (*OrderResult, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status.String()))

	return orderResultFromDomain(order), nil
}

// addProductItem snapshots the product's current price into a new item line
func (s *OrderService) addProductItem(ctx context.Context, order *sales.Order, productID uuid.UUID, quantity decimal.Decimal) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	_, err = order.AddItem(product.ID, product.Name, product.Code, quantity, product.GetPriceMoney())
	return err
}

// withInvoiceFigures fills in the invoicing state of an order result.
// Cancelled invoices do not count toward coverage.
func (s *OrderService) withInvoiceFigures(ctx context.Context, order *sales.Order) (*OrderResult, error) {
	invoices, err := s.invoiceRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, 0, len(invoices))
	invoiced := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == billing.InvoiceStatusCancelled {
			continue
		}
		amounts = append(amounts, inv.Amount)
		invoiced = invoiced.Add(inv.Amount)
	}

	result := orderResultFromDomain(order)
	result.FullyInvoiced = order.IsFullyInvoiced(amounts)
	result.InvoicedAmount = invoiced
	return result, nil
}

// generateOrderNumber produces a unique, human-readable order number
func generateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("SO-%s-%s", time.Now().Format("20060102"), suffix)
}
