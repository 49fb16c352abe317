package controllers

import (
	"net/http"

	"apachemart/app/models"
	"apachemart/app/repositories"
	"apachemart/app/services"
	"apachemart/pkg/bind"
	"apachemart/pkg/logger"
	"apachemart/pkg/middleware"
	"apachemart/pkg/response"
)

type OrderController struct {
	service *services.OrderService
	orders  *repositories.OrderRepository
}

func NewOrderController(service *services.OrderService, orders *repositories.OrderRepository) *OrderController {
	return &OrderController{service: service, orders: orders}
}

type placeOrderRequest struct {
	Items []services.OrderLine `json:"items" validate:"required"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Store places an order for the authenticated customer.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body placeOrderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.PlaceOrder(customerID, body.Items)
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order placed",
		"order_id", order.ID, "customer_id", customerID, "total", order.Total())
	response.Created(w, orderView(order))
}

// MyOrders lists the authenticated customer's orders.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.orders.GetOrdersByCustomer(customerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, orderViews(orders))
}

// Index lists every order. Admin only.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.GetAllOrders()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, orderViews(orders))
}

// Show returns one order. Admin only.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := c.orders.GetOrderByID(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if order == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, orderView(order))
}

// UpdateStatus moves an order through its lifecycle. Admin only.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body orderStatusRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	status, err := models.ParseOrderStatus(body.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := c.orders.UpdateOrderStatus(id, status); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"id": id, "status": status})
}

// Destroy removes an order and its lines. Admin only.
func (c *OrderController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.orders.DeleteOrder(id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"deleted": id})
}

func orderView(o *models.Order) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, map[string]interface{}{
			"product_id":   item.ProductID,
			"product_name": item.ProductName,
			"unit_price":   item.UnitPrice,
			"quantity":     item.Quantity,
			"line_total":   item.LineTotal(),
		})
	}
	return map[string]interface{}{
		"id":          o.ID,
		"customer_id": o.CustomerID,
		"order_date":  o.OrderDate,
		"status":      o.Status,
		"items":       items,
		"total":       o.Total(),
	}
}

func orderViews(orders []*models.Order) []map[string]interface{} {
	views := make([]map[string]interface{}, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	return views
}
