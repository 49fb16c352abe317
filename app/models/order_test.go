package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apachemart/app/models"
)

func TestAddItemSnapshotsAndMerges(t *testing.T) {
	laptop, err := models.NewProduct("Laptop Pro", 1299.99, 15)
	require.NoError(t, err)
	laptop.ID = 1

	order := models.NewOrder(7)
	require.NoError(t, order.AddItem(laptop, 1))
	require.NoError(t, order.AddItem(laptop, 2))

	items := order.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Laptop Pro", items[0].ProductName)
	assert.Equal(t, 1299.99, items[0].UnitPrice)

	// Later catalogue edits must not affect placed lines.
	require.NoError(t, laptop.SetPrice(999.99))
	assert.Equal(t, 1299.99, order.Items()[0].UnitPrice)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	order := models.NewOrder(7)
	assert.Error(t, order.AddItem(nil, 1))

	mouse, err := models.NewProduct("Mouse", 29.99, 50)
	require.NoError(t, err)
	assert.Error(t, order.AddItem(mouse, 0))
	assert.Error(t, order.AddItem(mouse, -2))
	assert.Empty(t, order.Items())
}

func TestOrderTotals(t *testing.T) {
	laptop, _ := models.NewProduct("Laptop Pro", 1000, 10)
	laptop.ID = 1
	mouse, _ := models.NewProduct("Mouse", 25.50, 10)
	mouse.ID = 2

	order := models.NewOrder(1)
	require.NoError(t, order.AddItem(laptop, 2))
	require.NoError(t, order.AddItem(mouse, 3))

	assert.Equal(t, 2076.50, order.Total())
	assert.Equal(t, 5, order.ItemCount())
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Confirmed", "Shipped", "Delivered", "Cancelled"} {
		status, err := models.ParseOrderStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(status))
	}

	_, err := models.ParseOrderStatus("Teleported")
	assert.Error(t, err)
}
