package models

import (
	"fmt"
	"strings"
	"time"

	"apachemart/pkg/apperr"
)

// Product is a catalogue entry. Name, price, and stock are guarded by their
// setters so an invalid product never exists in memory.
type Product struct {
	ID          uint
	Category    string
	Description string
	ImageURL    string
	CreatedAt   time.Time

	name  string
	price float64
	stock int
}

// NewProduct builds a validated product.
func NewProduct(name string, price float64, stock int) (*Product, error) {
	p := &Product{}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Name() string   { return p.name }
func (p *Product) Price() float64 { return p.price }
func (p *Product) Stock() int     { return p.stock }

// SetName rejects empty or whitespace-only names.
func (p *Product) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name", "product name cannot be empty")
	}
	p.name = name
	return nil
}

// SetPrice rejects negative prices.
func (p *Product) SetPrice(price float64) error {
	if price < 0 {
		return apperr.Validation("price", "price cannot be negative")
	}
	p.price = price
	return nil
}

// SetStock rejects negative stock levels.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return apperr.Validation("stock", "stock cannot be negative")
	}
	p.stock = stock
	return nil
}

// AddStock increases stock by quantity when new inventory arrives.
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return apperr.Validation("quantity", "quantity must be greater than 0")
	}
	p.stock += quantity
	return nil
}

// ReduceStock decreases stock by quantity for a purchase.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return apperr.Validation("quantity", "quantity must be greater than 0")
	}
	if quantity > p.stock {
		return &apperr.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.name,
			Available:   p.stock,
			Requested:   quantity,
		}
	}
	p.stock -= quantity
	return nil
}

func (p *Product) String() string {
	return fmt.Sprintf("Product: %s | Price: $%.2f | Stock: %d", p.name, p.price, p.stock)
}
