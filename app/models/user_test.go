package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apachemart/app/models"
	"apachemart/pkg/apperr"
)

func TestNewCustomerDefaults(t *testing.T) {
	c, err := models.NewCustomer("John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Customer", c.Role())
	assert.Equal(t, "john@example.com", c.Email())
	assert.True(t, c.IsActive)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestAccountEmailValidation(t *testing.T) {
	_, err := models.NewCustomer("John", "not-an-email", "password123")
	assert.True(t, apperr.IsValidation(err))

	c, err := models.NewCustomer("John", "john@example.com", "password123")
	require.NoError(t, err)
	assert.Error(t, c.SetEmail("still@not@valid"))
	assert.Equal(t, "john@example.com", c.Email())
}

func TestAccountPasswordValidation(t *testing.T) {
	_, err := models.NewCustomer("John", "john@example.com", "short")
	assert.True(t, apperr.IsValidation(err))

	_, err = models.NewAdmin("Admin", "admin@apache.com", "      ")
	assert.True(t, apperr.IsValidation(err))
}

func TestAdminRole(t *testing.T) {
	a, err := models.NewAdmin("Admin User", "admin@apache.com", "adminpass123")
	require.NoError(t, err)
	a.Department = "Management"
	assert.Equal(t, "Admin", a.Role())
	assert.Contains(t, a.Display(), "Admin")
}
