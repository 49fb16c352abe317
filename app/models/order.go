package models

import (
	"fmt"
	"time"

	"apachemart/pkg/apperr"
)

// OrderStatus is the order lifecycle state, stored as a string column.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// ParseOrderStatus maps a stored string back to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", apperr.Validation("status", fmt.Sprintf("unknown order status %q", s))
}

// OrderItem is one line of an order. ProductName and UnitPrice are snapshots
// taken at order time, so later catalogue edits never change past orders.
type OrderItem struct {
	ProductID   uint
	ProductName string
	UnitPrice   float64
	Quantity    int
}

// LineTotal returns UnitPrice × Quantity.
func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Order is a customer purchase with its owned line items.
type Order struct {
	ID         uint
	CustomerID uint
	OrderDate  time.Time
	Status     OrderStatus

	items []OrderItem
}

// NewOrder builds an empty pending order for the customer.
func NewOrder(customerID uint) *Order {
	return &Order{
		CustomerID: customerID,
		OrderDate:  time.Now(),
		Status:     StatusPending,
	}
}

// Items returns the order lines in insertion order.
func (o *Order) Items() []OrderItem { return o.items }

// SetItems replaces the line items wholesale. Used when hydrating an order
// from storage; AddItem is the path for building new orders.
func (o *Order) SetItems(items []OrderItem) {
	o.items = items
}

// AddItem appends a line for product, snapshotting its name and price.
// Adding a product that is already on the order merges the quantities into
// the existing line instead of duplicating it.
func (o *Order) AddItem(product *Product, quantity int) error {
	if product == nil {
		return apperr.Validation("product", "product is required")
	}
	if quantity <= 0 {
		return apperr.Validation("quantity", "quantity must be greater than 0")
	}

	for i := range o.items {
		if o.items[i].ProductID == product.ID {
			o.items[i].Quantity += quantity
			return nil
		}
	}

	o.items = append(o.items, OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name(),
		UnitPrice:   product.Price(),
		Quantity:    quantity,
	})
	return nil
}

// Total returns the sum of all line totals.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount returns the total quantity across all lines.
func (o *Order) ItemCount() int {
	var count int
	for _, item := range o.items {
		count += item.Quantity
	}
	return count
}

func (o *Order) String() string {
	return fmt.Sprintf("Order #%d | Customer: %d | Status: %s | Total: $%.2f",
		o.ID, o.CustomerID, o.Status, o.Total())
}
