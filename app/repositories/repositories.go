// Package repositories implements the data-access layer. Each repository
// wraps the shared database.Manager, mapping between the validated entities
// in app/models and the gorm row records in internal/schema.
//
// Every operation first checks Manager.IsOnline and fails fast with
// apperr.ErrOffline when the database is degraded. Operations that hit a
// connectivity error flip the manager offline themselves.
package repositories

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"apachemart/app/models"
	"apachemart/internal/schema"
	"apachemart/pkg/apperr"
	"apachemart/pkg/database"
)

// guard short-circuits with ErrOffline when the manager is degraded.
func guard(m *database.Manager) error {
	if !m.IsOnline() {
		return apperr.ErrOffline
	}
	return nil
}

// fail marks the manager offline when err looks like a connectivity problem,
// then returns err unchanged. Query errors (constraint violations, bad SQL)
// pass through without touching the flag.
func fail(m *database.Manager, err error) error {
	if isConnErr(err) {
		m.MarkOffline()
	}
	return err
}

func isConnErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"i/o timeout",
		"closed network connection",
		"database is closed",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// ─── Row ↔ entity mapping ─────────────────────────────────────────────────────

func productFromRow(row schema.ProductRow) (*models.Product, error) {
	p, err := models.NewProduct(row.Name, row.Price, row.Stock)
	if err != nil {
		return nil, err
	}
	p.ID = row.ID
	p.Category = row.Category
	p.Description = row.Description
	p.ImageURL = row.ImageURL
	p.CreatedAt = row.CreatedAt
	return p, nil
}

func productToRow(p *models.Product) schema.ProductRow {
	return schema.ProductRow{
		ID:          p.ID,
		Name:        p.Name(),
		Description: p.Description,
		Price:       p.Price(),
		Stock:       p.Stock(),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

func customerFromRow(row schema.CustomerRow) (*models.Customer, error) {
	c, err := models.NewCustomer(row.Name, row.Email, row.Password)
	if err != nil {
		return nil, err
	}
	c.ID = row.ID
	c.Address = row.Address
	c.PhoneNumber = row.PhoneNumber
	c.CreatedAt = row.CreatedAt
	c.IsActive = row.IsActive
	return c, nil
}

func customerToRow(c *models.Customer) schema.CustomerRow {
	return schema.CustomerRow{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email(),
		Password:    c.Password(),
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
		IsActive:    c.IsActive,
	}
}

func adminFromRow(row schema.AdminRow) (*models.Admin, error) {
	a, err := models.NewAdmin(row.Name, row.Email, row.Password)
	if err != nil {
		return nil, err
	}
	a.ID = row.ID
	a.Department = row.Department
	a.CreatedAt = row.CreatedAt
	a.IsActive = row.IsActive
	return a, nil
}

func adminToRow(a *models.Admin) schema.AdminRow {
	return schema.AdminRow{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email(),
		Password:   a.Password(),
		Department: a.Department,
		CreatedAt:  a.CreatedAt,
		IsActive:   a.IsActive,
	}
}
