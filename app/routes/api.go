// Package routes wires controllers onto the router.
package routes

import (
	"apachemart/app/controllers"
	"apachemart/app/repositories"
	"apachemart/app/services"
	"apachemart/pkg/database"
	"apachemart/pkg/middleware"
	"apachemart/pkg/rbac"
	"apachemart/pkg/router"
)

// RegisterAPI mounts the storefront API on r, building the repository and
// service graph from the shared database manager.
func RegisterAPI(r *router.Router, mgr *database.Manager) {
	products := repositories.NewProductRepository(mgr)
	customers := repositories.NewCustomerRepository(mgr)
	admins := repositories.NewAdminRepository(mgr)
	orders := repositories.NewOrderRepository(mgr)

	authController := controllers.NewAuthController(services.NewAuthService(customers, admins), customers)
	productController := controllers.NewProductController(products)
	customerController := controllers.NewCustomerController(customers)
	orderController := controllers.NewOrderController(services.NewOrderService(products, orders), orders)

	api := r.Group("/api")

	// Public storefront.
	api.Post("/register", "auth.register", authController.Register)
	api.Post("/login", "auth.login", authController.CustomerLogin)
	api.Post("/admin/login", "auth.admin_login", authController.AdminLogin)
	api.Post("/refresh", "auth.refresh", authController.Refresh)
	api.Get("/products", "products.index", productController.Index)
	api.Get("/products/{id}", "products.show", productController.Show)

	// Authenticated customers.
	customer := api.Group("", middleware.AuthMiddleware, rbac.HasRole("Customer"))
	customer.Get("/me", "customers.me", customerController.Me)
	customer.Put("/me", "customers.update_me", customerController.UpdateMe)
	customer.Post("/orders", "orders.store", orderController.Store)
	customer.Get("/orders", "orders.mine", orderController.MyOrders)

	// Back office.
	admin := api.Group("/admin", middleware.AuthMiddleware, rbac.HasRole("Admin"))
	admin.Post("/products", "admin.products.store", productController.Store)
	admin.Put("/products/{id}", "admin.products.update", productController.Update)
	admin.Delete("/products/{id}", "admin.products.destroy", productController.Destroy)
	admin.Post("/products/{id}/image", "admin.products.image", productController.UploadImage)
	admin.Get("/customers", "admin.customers.index", customerController.Index)
	admin.Get("/customers/{id}", "admin.customers.show", customerController.Show)
	admin.Delete("/customers/{id}", "admin.customers.destroy", customerController.Destroy)
	admin.Get("/orders", "admin.orders.index", orderController.Index)
	admin.Get("/orders/{id}", "admin.orders.show", orderController.Show)
	admin.Put("/orders/{id}/status", "admin.orders.status", orderController.UpdateStatus)
	admin.Delete("/orders/{id}", "admin.orders.destroy", orderController.Destroy)
}
