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
	"apachemart/pkg/metrics"
)

// CustomerRepository handles database operations for storefront users.
type CustomerRepository struct {
	mgr *database.Manager
}

func NewCustomerRepository(mgr *database.Manager) *CustomerRepository {
	return &CustomerRepository{mgr: mgr}
}

// GetCustomers returns every customer account.
func (r *CustomerRepository) GetCustomers() ([]*models.Customer, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []schema.CustomerRow
	if err := r.mgr.DB().Order("id").Find(&rows).Error; err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: list customers: %w", err))
	}

	customers := make([]*models.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := customerFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("repositories: map customer %d: %w", row.ID, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// GetCustomerByID looks up one customer. A missing id returns (nil, nil).
func (r *CustomerRepository) GetCustomerByID(id uint) (*models.Customer, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var row schema.CustomerRow
	err := r.mgr.DB().First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: get customer %d: %w", id, err))
	}
	return customerFromRow(row)
}

// GetCustomerByEmail looks up one customer by address. A missing email
// returns (nil, nil).
func (r *CustomerRepository) GetCustomerByEmail(email string) (*models.Customer, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var row schema.CustomerRow
	err := r.mgr.DB().Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: get customer by email: %w", err))
	}
	return customerFromRow(row)
}

// AddCustomer registers a new customer. A duplicate email fails with
// apperr.ErrEmailTaken before touching the unique index.
func (r *CustomerRepository) AddCustomer(customer *models.Customer) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("insert", time.Now())

	var count int64
	if err := r.mgr.DB().Model(&schema.CustomerRow{}).
		Where("email = ?", customer.Email()).Count(&count).Error; err != nil {
		return fail(r.mgr, fmt.Errorf("repositories: check customer email: %w", err))
	}
	if count > 0 {
		return apperr.ErrEmailTaken
	}

	row := customerToRow(customer)
	if err := r.mgr.DB().Create(&row).Error; err != nil {
		return fail(r.mgr, fmt.Errorf("repositories: add customer: %w", err))
	}
	customer.ID = row.ID
	return nil
}

// UpdateCustomer persists every field of customer.
func (r *CustomerRepository) UpdateCustomer(customer *models.Customer) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("update", time.Now())

	row := customerToRow(customer)
	res := r.mgr.DB().Model(&schema.CustomerRow{}).Where("id = ?", row.ID).
		Select("*").Omit("id").Updates(row)
	if res.Error != nil {
		return fail(r.mgr, fmt.Errorf("repositories: update customer %d: %w", row.ID, res.Error))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("customer", row.ID)
	}
	return nil
}

// DeleteCustomer removes a customer and, in the same transaction, their
// orders and order items.
func (r *CustomerRepository) DeleteCustomer(id uint) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("delete", time.Now())

	err := r.mgr.DB().Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&schema.OrderRow{}).Where("customer_id = ?", id).
			Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).
				Delete(&schema.OrderItemRow{}).Error; err != nil {
				return err
			}
			if err := tx.Where("customer_id = ?", id).
				Delete(&schema.OrderRow{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&schema.CustomerRow{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("customer", id)
		}
		return nil
	})
	if err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return fail(r.mgr, fmt.Errorf("repositories: delete customer %d: %w", id, err))
	}
	return nil
}

// AuthenticateCustomer returns the customer matching email and password, or
// (nil, nil) when either is wrong. Passwords are compared verbatim; the
// caller cannot distinguish a bad email from a bad password.
func (r *CustomerRepository) AuthenticateCustomer(email, password string) (*models.Customer, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	customer, err := r.GetCustomerByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Password() != password || !customer.IsActive {
		return nil, nil
	}
	return customer, nil
}
