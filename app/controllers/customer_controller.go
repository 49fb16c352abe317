package controllers

import (
	"net/http"

	"apachemart/app/repositories"
	"apachemart/pkg/bind"
	"apachemart/pkg/logger"
	"apachemart/pkg/middleware"
	"apachemart/pkg/response"
)

type CustomerController struct {
	customers *repositories.CustomerRepository
}

func NewCustomerController(customers *repositories.CustomerRepository) *CustomerController {
	return &CustomerController{customers: customers}
}

type customerUpdateRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// Index lists every customer. Admin only.
func (c *CustomerController) Index(w http.ResponseWriter, r *http.Request) {
	customers, err := c.customers.GetCustomers()
	if err != nil {
		response.FromError(w, err)
		return
	}

	views := make([]map[string]interface{}, 0, len(customers))
	for _, customer := range customers {
		views = append(views, customerView(customer))
	}
	response.Success(w, views)
}

// Show returns one customer. Admin only.
func (c *CustomerController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	customer, err := c.customers.GetCustomerByID(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if customer == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, customerView(customer))
}

// Me returns the authenticated customer's own profile.
func (c *CustomerController) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	customer, err := c.customers.GetCustomerByID(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if customer == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, customerView(customer))
}

// UpdateMe updates the authenticated customer's profile fields. Email and
// password changes go through dedicated flows, not this endpoint.
func (c *CustomerController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body customerUpdateRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	customer, err := c.customers.GetCustomerByID(id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if customer == nil {
		response.NotFound(w)
		return
	}

	customer.Name = body.Name
	customer.Address = body.Address
	customer.PhoneNumber = body.PhoneNumber

	if err := c.customers.UpdateCustomer(customer); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, customerView(customer))
}

// Destroy removes a customer and all their orders. Admin only.
func (c *CustomerController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.customers.DeleteCustomer(id); err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("customer deleted", "customer_id", id)
	response.Success(w, map[string]interface{}{"deleted": id})
}
