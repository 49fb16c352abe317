package seeders

import (
	"time"

	"gorm.io/gorm"

	"apachemart/internal/schema"
)

func init() {
	Register("products", SeedProducts)
	Register("customers", SeedCustomers)
	Register("admins", SeedAdmins)
}

// SeedProducts inserts the demo catalogue. Skips when products exist so the
// seeder is safe to run repeatedly.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&schema.ProductRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	rows := []schema.ProductRow{
		{Name: "Laptop Pro", Description: "High-performance laptop with 16GB RAM", Price: 1299.99, Stock: 15, Category: "Electronics", CreatedAt: now},
		{Name: "Wireless Mouse", Description: "Ergonomic wireless mouse", Price: 29.99, Stock: 50, Category: "Accessories", CreatedAt: now},
		{Name: "USB-C Cable", Description: "2m braided USB-C charging cable", Price: 14.99, Stock: 100, Category: "Accessories", CreatedAt: now},
		{Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard with blue switches", Price: 129.99, Stock: 25, Category: "Accessories", CreatedAt: now},
		{Name: "4K Monitor", Description: "27-inch 4K UHD monitor", Price: 499.99, Stock: 10, Category: "Electronics", CreatedAt: now},
	}
	return db.Create(&rows).Error
}

// SeedCustomers inserts the demo customer accounts.
func SeedCustomers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&schema.CustomerRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	rows := []schema.CustomerRow{
		{Name: "John Doe", Email: "john@example.com", Password: "password123", Address: "123 Main St", PhoneNumber: "555-0101", CreatedAt: now, IsActive: true},
		{Name: "Jane Smith", Email: "jane@example.com", Password: "password123", Address: "456 Oak Ave", PhoneNumber: "555-0102", CreatedAt: now, IsActive: true},
	}
	return db.Create(&rows).Error
}

// SeedAdmins inserts the default administrator.
func SeedAdmins(db *gorm.DB) error {
	var count int64
	if err := db.Model(&schema.AdminRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	row := schema.AdminRow{
		Name:       "Admin User",
		Email:      "admin@apache.com",
		Password:   "adminpass123",
		Department: "Management",
		CreatedAt:  time.Now(),
		IsActive:   true,
	}
	return db.Create(&row).Error
}
