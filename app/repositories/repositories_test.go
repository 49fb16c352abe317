package repositories_test

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"apachemart/app/models"
	"apachemart/app/repositories"
	"apachemart/internal/schema"
	"apachemart/pkg/apperr"
	"apachemart/pkg/database"
	"apachemart/pkg/metrics"
)

// testManager opens a fresh in-memory database with the full schema.
func testManager(t *testing.T) *database.Manager {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(schema.All()...))

	return database.NewManagerWithDB(db)
}

func seedProduct(t *testing.T, repo *repositories.ProductRepository, name string, price float64, stock int) *models.Product {
	t.Helper()
	p, err := models.NewProduct(name, price, stock)
	require.NoError(t, err)
	require.NoError(t, repo.AddProduct(p))
	return p
}

func seedCustomer(t *testing.T, repo *repositories.CustomerRepository, name, email string) *models.Customer {
	t.Helper()
	c, err := models.NewCustomer(name, email, "password123")
	require.NoError(t, err)
	require.NoError(t, repo.AddCustomer(c))
	return c
}

// ─── Products ─────────────────────────────────────────────────────────────────

func TestProductCRUD(t *testing.T) {
	mgr := testManager(t)
	repo := repositories.NewProductRepository(mgr)

	p := seedProduct(t, repo, "Laptop Pro", 1299.99, 15)
	assert.NotZero(t, p.ID)

	got, err := repo.GetProductByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Laptop Pro", got.Name())
	assert.Equal(t, 15, got.Stock())

	require.NoError(t, got.SetPrice(1199.99))
	require.NoError(t, repo.UpdateProduct(got))

	updated, err := repo.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1199.99, updated.Price())

	all, err := repo.GetProducts()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteProduct(p.ID))
	gone, err := repo.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGetProductByIDMissingReturnsNilNil(t *testing.T) {
	mgr := testManager(t)
	repo := repositories.NewProductRepository(mgr)

	p, err := repo.GetProductByID(9999)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductsByCategory(t *testing.T) {
	mgr := testManager(t)
	repo := repositories.NewProductRepository(mgr)

	laptop := seedProduct(t, repo, "Laptop Pro", 1299.99, 15)
	laptop.Category = "Electronics"
	require.NoError(t, repo.UpdateProduct(laptop))
	seedProduct(t, repo, "Mouse", 29.99, 50)

	electronics, err := repo.GetProductsByCategory("Electronics")
	require.NoError(t, err)
	require.Len(t, electronics, 1)
	assert.Equal(t, "Laptop Pro", electronics[0].Name())
}

func TestUpdateMissingProductIsNotFound(t *testing.T) {
	mgr := testManager(t)
	repo := repositories.NewProductRepository(mgr)

	p, err := models.NewProduct("Ghost", 1, 1)
	require.NoError(t, err)
	p.ID = 4242
	assert.True(t, apperr.IsNotFound(repo.UpdateProduct(p)))
	assert.True(t, apperr.IsNotFound(repo.DeleteProduct(4242)))
	assert.True(t, apperr.IsNotFound(repo.UpdateStock(4242, 3)))
}

// ─── Customers ────────────────────────────────────────────────────────────────

func TestDuplicateEmailConflicts(t *testing.T) {
	mgr := testManager(t)
	repo := repositories.NewCustomerRepository(mgr)

	seedCustomer(t, repo, "John Doe", "john@example.com")

	dup, err := models.NewCustomer("John Clone", "john@example.com", "different123")
	require.NoError(t, err)
	err = repo.AddCustomer(dup)
	assert.True(t, apperr.IsConflict(err))

	all, err := repo.GetCustomers()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAuthenticateCustomer(t *testing.T) {
	mgr := testManager(t)
	repo := repositories.NewCustomerRepository(mgr)
	seedCustomer(t, repo, "John Doe", "john@example.com")

	c, err := repo.AuthenticateCustomer("john@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "John Doe", c.Name)

	// Wrong password and unknown email look identical to the caller.
	c, err = repo.AuthenticateCustomer("john@example.com", "wrongpass1")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = repo.AuthenticateCustomer("nobody@example.com", "password123")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDeleteCustomerCascades(t *testing.T) {
	mgr := testManager(t)
	productRepo := repositories.NewProductRepository(mgr)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)

	p := seedProduct(t, productRepo, "Cable", 14.99, 100)
	c := seedCustomer(t, customerRepo, "Jane Smith", "jane@example.com")

	order := models.NewOrder(c.ID)
	require.NoError(t, order.AddItem(p, 2))
	require.NoError(t, orderRepo.AddOrder(order))

	require.NoError(t, customerRepo.DeleteCustomer(c.ID))

	gone, err := customerRepo.GetCustomerByID(c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	orders, err := orderRepo.GetOrdersByCustomer(c.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	var itemCount int64
	require.NoError(t, mgr.DB().Model(&schema.OrderItemRow{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

// ─── Admins ───────────────────────────────────────────────────────────────────

func TestAuthenticateAdmin(t *testing.T) {
	mgr := testManager(t)
	repo := repositories.NewAdminRepository(mgr)

	a, err := models.NewAdmin("Admin User", "admin@apache.com", "adminpass123")
	require.NoError(t, err)
	a.Department = "Management"
	require.NoError(t, repo.AddAdmin(a))

	got, err := repo.AuthenticateAdmin("admin@apache.com", "adminpass123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Management", got.Department)

	got, err = repo.AuthenticateAdmin("admin@apache.com", "nope-nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ─── Orders ───────────────────────────────────────────────────────────────────

func TestAddOrderDecrementsStock(t *testing.T) {
	mgr := testManager(t)
	productRepo := repositories.NewProductRepository(mgr)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)

	laptop := seedProduct(t, productRepo, "Laptop Pro", 1299.99, 15)
	mouse := seedProduct(t, productRepo, "Mouse", 29.99, 50)
	c := seedCustomer(t, customerRepo, "John Doe", "john@example.com")

	order := models.NewOrder(c.ID)
	require.NoError(t, order.AddItem(laptop, 2))
	require.NoError(t, order.AddItem(mouse, 3))
	require.NoError(t, orderRepo.AddOrder(order))
	assert.NotZero(t, order.ID)

	afterLaptop, err := productRepo.GetProductByID(laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, afterLaptop.Stock())

	afterMouse, err := productRepo.GetProductByID(mouse.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, afterMouse.Stock())

	loaded, err := orderRepo.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Items(), 2)
	assert.Equal(t, order.Total(), loaded.Total())
}

func TestAddOrderInsufficientStockRollsBack(t *testing.T) {
	mgr := testManager(t)
	productRepo := repositories.NewProductRepository(mgr)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)

	laptop := seedProduct(t, productRepo, "Laptop Pro", 1299.99, 15)
	monitor := seedProduct(t, productRepo, "Monitor", 499.99, 2)
	c := seedCustomer(t, customerRepo, "John Doe", "john@example.com")

	order := models.NewOrder(c.ID)
	require.NoError(t, order.AddItem(laptop, 1))
	require.NoError(t, order.AddItem(monitor, 3)) // only 2 in stock

	err := orderRepo.AddOrder(order)
	assert.True(t, apperr.IsInsufficientStock(err))

	// The error names the offending product and its remaining stock.
	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, monitor.ID, stockErr.ProductID)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	// The laptop decrement must have rolled back with the rest.
	afterLaptop, err := productRepo.GetProductByID(laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, afterLaptop.Stock())

	afterMonitor, err := productRepo.GetProductByID(monitor.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, afterMonitor.Stock())

	orders, err := orderRepo.GetAllOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCompetingOrdersOnlyOneSucceeds(t *testing.T) {
	mgr := testManager(t)
	productRepo := repositories.NewProductRepository(mgr)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)

	monitor := seedProduct(t, productRepo, "Monitor", 499.99, 1)
	john := seedCustomer(t, customerRepo, "John Doe", "john@example.com")
	jane := seedCustomer(t, customerRepo, "Jane Smith", "jane@example.com")

	first := models.NewOrder(john.ID)
	require.NoError(t, first.AddItem(monitor, 1))
	require.NoError(t, orderRepo.AddOrder(first))

	second := models.NewOrder(jane.ID)
	require.NoError(t, second.AddItem(monitor, 1))
	err := orderRepo.AddOrder(second)
	assert.True(t, apperr.IsInsufficientStock(err))

	after, err := productRepo.GetProductByID(monitor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock())

	orders, err := orderRepo.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestAddOrderUnknownProduct(t *testing.T) {
	mgr := testManager(t)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)
	c := seedCustomer(t, customerRepo, "John Doe", "john@example.com")

	order := models.NewOrder(c.ID)
	order.SetItems([]models.OrderItem{{ProductID: 9999, ProductName: "Ghost", UnitPrice: 1, Quantity: 1}})

	err := orderRepo.AddOrder(order)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateOrderStatus(t *testing.T) {
	mgr := testManager(t)
	productRepo := repositories.NewProductRepository(mgr)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)

	p := seedProduct(t, productRepo, "Cable", 14.99, 100)
	c := seedCustomer(t, customerRepo, "John Doe", "john@example.com")

	order := models.NewOrder(c.ID)
	require.NoError(t, order.AddItem(p, 1))
	require.NoError(t, orderRepo.AddOrder(order))

	require.NoError(t, orderRepo.UpdateOrderStatus(order.ID, models.StatusShipped))
	loaded, err := orderRepo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, loaded.Status)

	assert.Error(t, orderRepo.UpdateOrderStatus(order.ID, models.OrderStatus("Lost")))
	assert.True(t, apperr.IsNotFound(orderRepo.UpdateOrderStatus(9999, models.StatusShipped)))
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	mgr := testManager(t)
	productRepo := repositories.NewProductRepository(mgr)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)

	p := seedProduct(t, productRepo, "Cable", 14.99, 100)
	c := seedCustomer(t, customerRepo, "John Doe", "john@example.com")

	order := models.NewOrder(c.ID)
	require.NoError(t, order.AddItem(p, 4))
	require.NoError(t, orderRepo.AddOrder(order))

	require.NoError(t, orderRepo.DeleteOrder(order.ID))

	gone, err := orderRepo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var itemCount int64
	require.NoError(t, mgr.DB().Model(&schema.OrderItemRow{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

// ─── Offline behaviour ────────────────────────────────────────────────────────

func TestOfflineShortCircuits(t *testing.T) {
	mgr := testManager(t)
	mgr.MarkOffline()

	productRepo := repositories.NewProductRepository(mgr)
	customerRepo := repositories.NewCustomerRepository(mgr)
	orderRepo := repositories.NewOrderRepository(mgr)

	_, err := productRepo.GetProducts()
	assert.ErrorIs(t, err, apperr.ErrOffline)

	p, _ := models.NewProduct("Cable", 14.99, 1)
	assert.ErrorIs(t, productRepo.AddProduct(p), apperr.ErrOffline)

	_, err = customerRepo.AuthenticateCustomer("john@example.com", "password123")
	assert.ErrorIs(t, err, apperr.ErrOffline)

	assert.ErrorIs(t, orderRepo.AddOrder(models.NewOrder(1)), apperr.ErrOffline)
}

// ─── Instrumentation ──────────────────────────────────────────────────────────

func TestQueriesRecordDurations(t *testing.T) {
	mgr := testManager(t)
	productRepo := repositories.NewProductRepository(mgr)

	seedProduct(t, productRepo, "Laptop Pro", 1299.99, 15)
	_, err := productRepo.GetProducts()
	require.NoError(t, err)
	require.NoError(t, productRepo.UpdateStock(1, 10))
	require.NoError(t, productRepo.DeleteProduct(1))

	// One histogram series per operation touched above.
	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.DBQueryDuration), 4)
}
