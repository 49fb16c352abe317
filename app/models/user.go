package models

import (
	"fmt"
	"strings"
	"time"

	"apachemart/pkg/apperr"
	"apachemart/pkg/validate"
)

// User is the behaviour shared by Customer and Admin.
type User interface {
	Role() string
	Email() string
	Display() string
}

// Account carries the field set shared by both user kinds. Email and password
// are setter-guarded; passwords are compared verbatim against the database,
// matching the seeded demo credentials (see DESIGN.md).
type Account struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	IsActive  bool

	email    string
	password string
}

func (a *Account) Email() string    { return a.email }
func (a *Account) Password() string { return a.password }

// SetEmail rejects addresses that do not parse.
func (a *Account) SetEmail(email string) error {
	if !validate.Email(email) {
		return apperr.Validation("email", "invalid email format")
	}
	a.email = email
	return nil
}

// SetPassword rejects passwords shorter than 6 characters.
func (a *Account) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" || len(password) < 6 {
		return apperr.Validation("password", "password must be at least 6 characters")
	}
	a.password = password
	return nil
}

// Customer is a storefront user.
type Customer struct {
	Account
	Address     string
	PhoneNumber string
}

// NewCustomer builds a validated customer. CreatedAt and IsActive receive
// their registration defaults.
func NewCustomer(name, email, password string) (*Customer, error) {
	c := &Customer{}
	c.Name = name
	c.CreatedAt = time.Now()
	c.IsActive = true
	if err := c.SetEmail(email); err != nil {
		return nil, err
	}
	if err := c.SetPassword(password); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Role() string { return "Customer" }

func (c *Customer) Display() string {
	return fmt.Sprintf("%s (%s) - %s", c.Name, c.Role(), c.email)
}

// Admin is a back-office user.
type Admin struct {
	Account
	Department string
}

// NewAdmin builds a validated admin.
func NewAdmin(name, email, password string) (*Admin, error) {
	a := &Admin{}
	a.Name = name
	a.CreatedAt = time.Now()
	a.IsActive = true
	if err := a.SetEmail(email); err != nil {
		return nil, err
	}
	if err := a.SetPassword(password); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Admin) Role() string { return "Admin" }

func (a *Admin) Display() string {
	return fmt.Sprintf("%s (%s) - %s", a.Name, a.Role(), a.email)
}
