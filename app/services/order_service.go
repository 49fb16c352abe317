package services

import (
	"errors"

	"apachemart/app/models"
	"apachemart/app/repositories"
	"apachemart/pkg/apperr"
	"apachemart/pkg/metrics"
)

// OrderLine is one requested product/quantity pair for a new order.
type OrderLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required"`
}

// OrderService builds orders from requested lines and hands them to the
// repository for atomic placement.
type OrderService struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
}

func NewOrderService(products *repositories.ProductRepository, orders *repositories.OrderRepository) *OrderService {
	return &OrderService{products: products, orders: orders}
}

// PlaceOrder resolves each line against the catalogue, snapshots names and
// prices onto the order, and places it atomically. Duplicate product lines
// merge into one.
func (s *OrderService) PlaceOrder(customerID uint, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		metrics.RecordOrder("invalid")
		return nil, apperr.Validation("items", "order must contain at least one item")
	}

	order := models.NewOrder(customerID)
	for _, line := range lines {
		product, err := s.products.GetProductByID(line.ProductID)
		if err != nil {
			metrics.RecordOrder(orderFailReason(err))
			return nil, err
		}
		if product == nil {
			metrics.RecordOrder("not_found")
			return nil, apperr.NotFound("product", line.ProductID)
		}
		if err := order.AddItem(product, line.Quantity); err != nil {
			metrics.RecordOrder("invalid")
			return nil, err
		}
	}

	if err := s.orders.AddOrder(order); err != nil {
		metrics.RecordOrder(orderFailReason(err))
		return nil, err
	}

	metrics.RecordOrder("")
	return order, nil
}

func orderFailReason(err error) string {
	switch {
	case apperr.IsInsufficientStock(err):
		return "insufficient_stock"
	case apperr.IsNotFound(err):
		return "not_found"
	case apperr.IsValidation(err):
		return "invalid"
	case errors.Is(err, apperr.ErrOffline):
		return "offline"
	default:
		return "error"
	}
}
