package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apachemart/app/models"
	"apachemart/pkg/apperr"
)

func TestNewProductValidates(t *testing.T) {
	p, err := models.NewProduct("Laptop Pro", 1299.99, 15)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", p.Name())
	assert.Equal(t, 1299.99, p.Price())
	assert.Equal(t, 15, p.Stock())

	_, err = models.NewProduct("   ", 10, 1)
	assert.True(t, apperr.IsValidation(err))

	_, err = models.NewProduct("Mouse", -1, 1)
	assert.True(t, apperr.IsValidation(err))

	_, err = models.NewProduct("Mouse", 10, -1)
	assert.True(t, apperr.IsValidation(err))
}

func TestSettersRejectInvalidWithoutMutating(t *testing.T) {
	p, err := models.NewProduct("Mouse", 29.99, 50)
	require.NoError(t, err)

	assert.Error(t, p.SetName(""))
	assert.Equal(t, "Mouse", p.Name())

	assert.Error(t, p.SetPrice(-0.01))
	assert.Equal(t, 29.99, p.Price())

	assert.Error(t, p.SetStock(-5))
	assert.Equal(t, 50, p.Stock())
}

func TestStockAdjustments(t *testing.T) {
	p, err := models.NewProduct("Cable", 14.99, 10)
	require.NoError(t, err)

	require.NoError(t, p.AddStock(5))
	assert.Equal(t, 15, p.Stock())

	assert.Error(t, p.AddStock(0))
	assert.Error(t, p.AddStock(-3))

	require.NoError(t, p.ReduceStock(15))
	assert.Equal(t, 0, p.Stock())

	err = p.ReduceStock(1)
	assert.True(t, apperr.IsInsufficientStock(err))
	assert.Equal(t, 0, p.Stock())

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 1, stockErr.Requested)
}
