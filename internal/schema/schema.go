// Package schema defines the gorm row records for the five marketplace
// tables. Repositories map these rows to and from the validated entities in
// app/models; nothing outside the persistence layer should touch them.
package schema

import "time"

// ProductRow is a row of the products table.
type ProductRow struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	Stock       int     `gorm:"not null"`
	Category    string  `gorm:"size:100"`
	ImageURL    string  `gorm:"size:255"`
	CreatedAt   time.Time
}

func (ProductRow) TableName() string { return "products" }

// CustomerRow is a row of the customers table.
type CustomerRow struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Email       string `gorm:"size:255;not null;uniqueIndex"`
	Password    string `gorm:"size:255;not null"`
	Address     string `gorm:"size:500"`
	PhoneNumber string `gorm:"size:20"`
	CreatedAt   time.Time
	IsActive    bool `gorm:"default:true"`
}

func (CustomerRow) TableName() string { return "customers" }

// AdminRow is a row of the admins table.
type AdminRow struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:255;not null"`
	Email      string `gorm:"size:255;not null;uniqueIndex"`
	Password   string `gorm:"size:255;not null"`
	Department string `gorm:"size:100"`
	CreatedAt  time.Time
	IsActive   bool `gorm:"default:true"`
}

func (AdminRow) TableName() string { return "admins" }

// OrderRow is a row of the orders table. Items are owned rows in
// order_items and cascade-delete with the order.
type OrderRow struct {
	ID         uint        `gorm:"primaryKey"`
	CustomerID uint        `gorm:"not null;index"`
	Customer   CustomerRow `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	OrderDate  time.Time
	Status     string `gorm:"size:50;default:Pending"`
}

func (OrderRow) TableName() string { return "orders" }

// OrderItemRow is a row of the order_items table. ProductName and UnitPrice
// are order-time snapshots, deliberately denormalised from products. There
// is no foreign key on ProductID so order history survives catalogue
// deletions.
type OrderItemRow struct {
	ID          uint     `gorm:"primaryKey"`
	OrderID     uint     `gorm:"not null;index"`
	Order       OrderRow `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductID   uint     `gorm:"not null;index"`
	ProductName string   `gorm:"size:255"`
	UnitPrice   float64
	Quantity    int `gorm:"not null"`
}

func (OrderItemRow) TableName() string { return "order_items" }

// All lists every record type in dependency order, for table creation.
func All() []interface{} {
	return []interface{}{
		&ProductRow{},
		&CustomerRow{},
		&AdminRow{},
		&OrderRow{},
		&OrderItemRow{},
	}
}
