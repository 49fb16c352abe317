package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"apachemart/pkg/apperr"
)

func TestKindsSurviveWrapping(t *testing.T) {
	ve := fmt.Errorf("placing order: %w", apperr.Validation("quantity", "must be positive"))
	assert.True(t, apperr.IsValidation(ve))
	assert.False(t, apperr.IsNotFound(ve))

	nf := fmt.Errorf("lookup: %w", apperr.NotFound("product", 42))
	assert.True(t, apperr.IsNotFound(nf))
	assert.Contains(t, nf.Error(), "product 42 not found")

	conflict := fmt.Errorf("register: %w", apperr.ErrEmailTaken)
	assert.True(t, apperr.IsConflict(conflict))

	stock := fmt.Errorf("order: %w", &apperr.InsufficientStockError{
		ProductID: 7, ProductName: "Monitor", Available: 2, Requested: 3,
	})
	assert.True(t, apperr.IsInsufficientStock(stock))
	assert.Contains(t, stock.Error(), "requested 3, available 2")

	offline := fmt.Errorf("repositories: list products: %w", apperr.ErrOffline)
	assert.True(t, errors.Is(offline, apperr.ErrOffline))
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "price: price cannot be negative",
		apperr.Validation("price", "price cannot be negative").Error())
	assert.Equal(t, "boom", apperr.Validation("", "boom").Error())
}
