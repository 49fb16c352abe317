package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"apachemart/app/models"
	"apachemart/internal/schema"
	"apachemart/pkg/apperr"
	"apachemart/pkg/database"
	"apachemart/pkg/logger"
	"apachemart/pkg/metrics"
)

// OrderRepository handles database operations for orders and their lines.
type OrderRepository struct {
	mgr *database.Manager
}

func NewOrderRepository(mgr *database.Manager) *OrderRepository {
	return &OrderRepository{mgr: mgr}
}

// AddOrder places order atomically: every line's stock is decremented with a
// conditional UPDATE, then the order and its items are inserted. If any line
// cannot be covered the whole transaction rolls back and no stock changes.
//
// The decrement is guarded in SQL ("stock >= quantity" in the WHERE clause),
// so two orders racing for the last units cannot both succeed; the loser
// sees zero rows affected and fails with InsufficientStockError.
func (r *OrderRepository) AddOrder(order *models.Order) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("insert", time.Now())
	if order == nil || len(order.Items()) == 0 {
		return apperr.Validation("items", "order must contain at least one item")
	}

	err := r.mgr.DB().Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items() {
			res := tx.Model(&schema.ProductRow{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var row schema.ProductRow
				err := tx.First(&row, item.ProductID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("product", item.ProductID)
				}
				if err != nil {
					return err
				}
				return &apperr.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: row.Name,
					Available:   row.Stock,
					Requested:   item.Quantity,
				}
			}
		}

		orderRow := schema.OrderRow{
			CustomerID: order.CustomerID,
			OrderDate:  order.OrderDate,
			Status:     string(order.Status),
		}
		if err := tx.Create(&orderRow).Error; err != nil {
			return err
		}

		itemRows := make([]schema.OrderItemRow, 0, len(order.Items()))
		for _, item := range order.Items() {
			itemRows = append(itemRows, schema.OrderItemRow{
				OrderID:     orderRow.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
			})
		}
		if err := tx.Create(&itemRows).Error; err != nil {
			return err
		}

		order.ID = orderRow.ID
		return nil
	})
	if err != nil {
		if apperr.IsInsufficientStock(err) || apperr.IsNotFound(err) || apperr.IsValidation(err) {
			return err
		}
		return fail(r.mgr, fmt.Errorf("repositories: add order: %w", err))
	}
	return nil
}

// GetOrderByID loads one order with its lines. A missing id returns
// (nil, nil).
func (r *OrderRepository) GetOrderByID(id uint) (*models.Order, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var row schema.OrderRow
	err := r.mgr.DB().First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: get order %d: %w", id, err))
	}
	return r.hydrate(row), nil
}

// GetOrdersByCustomer returns a customer's orders, newest first.
func (r *OrderRepository) GetOrdersByCustomer(customerID uint) ([]*models.Order, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []schema.OrderRow
	if err := r.mgr.DB().Where("customer_id = ?", customerID).
		Order("order_date desc").Find(&rows).Error; err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: list orders for customer %d: %w", customerID, err))
	}

	orders := make([]*models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, r.hydrate(row))
	}
	return orders, nil
}

// GetAllOrders returns every order, newest first.
func (r *OrderRepository) GetAllOrders() ([]*models.Order, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []schema.OrderRow
	if err := r.mgr.DB().Order("order_date desc").Find(&rows).Error; err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: list orders: %w", err))
	}

	orders := make([]*models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, r.hydrate(row))
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new lifecycle state.
func (r *OrderRepository) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("update", time.Now())
	if _, err := models.ParseOrderStatus(string(status)); err != nil {
		return err
	}

	res := r.mgr.DB().Model(&schema.OrderRow{}).Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return fail(r.mgr, fmt.Errorf("repositories: update order status %d: %w", id, res.Error))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order", id)
	}
	return nil
}

// DeleteOrder removes an order and its lines in one transaction.
func (r *OrderRepository) DeleteOrder(id uint) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("delete", time.Now())

	err := r.mgr.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&schema.OrderItemRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&schema.OrderRow{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("order", id)
		}
		return nil
	})
	if err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return fail(r.mgr, fmt.Errorf("repositories: delete order %d: %w", id, err))
	}
	return nil
}

// hydrate maps an order row to the entity and loads its lines. A failed item
// query degrades to an empty item list rather than failing the whole read;
// the order header is still useful without its lines.
func (r *OrderRepository) hydrate(row schema.OrderRow) *models.Order {
	order := &models.Order{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		OrderDate:  row.OrderDate,
		Status:     models.OrderStatus(row.Status),
	}

	var itemRows []schema.OrderItemRow
	if err := r.mgr.DB().Where("order_id = ?", row.ID).
		Order("id").Find(&itemRows).Error; err != nil {
		logger.Warn("order items load failed", "order_id", row.ID, "error", err)
		order.SetItems(nil)
		return order
	}

	items := make([]models.OrderItem, 0, len(itemRows))
	for _, ir := range itemRows {
		items = append(items, models.OrderItem{
			ProductID:   ir.ProductID,
			ProductName: ir.ProductName,
			UnitPrice:   ir.UnitPrice,
			Quantity:    ir.Quantity,
		})
	}
	order.SetItems(items)
	return order
}
