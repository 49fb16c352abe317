// Package controllers holds the HTTP handlers. Controllers stay thin:
// decode with bind, delegate to a service or repository, reply with the
// response envelope.
package controllers

import (
	"net/http"

	"apachemart/app/models"
	"apachemart/app/repositories"
	"apachemart/app/services"
	"apachemart/pkg/apperr"
	"apachemart/pkg/bind"
	"apachemart/pkg/logger"
	"apachemart/pkg/response"
)

type AuthController struct {
	service   *services.AuthService
	customers *repositories.CustomerRepository
}

func NewAuthController(service *services.AuthService, customers *repositories.CustomerRepository) *AuthController {
	return &AuthController{service: service, customers: customers}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// CustomerLogin issues a token for valid customer credentials.
func (c *AuthController) CustomerLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, customer, err := c.service.LoginCustomer(body.Email, body.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if customer == nil {
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	logger.WithCtx(r.Context()).Info("customer login", "customer_id", customer.ID)
	response.Success(w, map[string]interface{}{
		"token":         pair.Access,
		"refresh_token": pair.Refresh,
		"customer":      customerView(customer),
	})
}

// AdminLogin issues a token for valid admin credentials.
func (c *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, admin, err := c.service.LoginAdmin(body.Email, body.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if admin == nil {
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	logger.WithCtx(r.Context()).Info("admin login", "admin_id", admin.ID)
	response.Success(w, map[string]interface{}{
		"token":         pair.Access,
		"refresh_token": pair.Refresh,
		"admin":         adminView(admin),
	})
}

// Refresh exchanges a refresh token for a new access token.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var body refreshRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Refresh(body.RefreshToken)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	response.Success(w, map[string]interface{}{"token": token})
}

// Register creates a customer account.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	customer, err := models.NewCustomer(body.Name, body.Email, body.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	customer.Address = body.Address
	customer.PhoneNumber = body.PhoneNumber

	if err := c.customers.AddCustomer(customer); err != nil {
		if apperr.IsConflict(err) {
			response.Error(w, http.StatusConflict, "Email already registered")
			return
		}
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("customer registered", "customer_id", customer.ID)
	response.Created(w, customerView(customer))
}

// ─── View models ──────────────────────────────────────────────────────────────
// Entities keep email and password unexported, so handlers serialise through
// these maps instead of marshalling the structs directly.

func customerView(c *models.Customer) map[string]interface{} {
	return map[string]interface{}{
		"id":           c.ID,
		"name":         c.Name,
		"email":        c.Email(),
		"address":      c.Address,
		"phone_number": c.PhoneNumber,
		"created_at":   c.CreatedAt,
		"is_active":    c.IsActive,
	}
}

func adminView(a *models.Admin) map[string]interface{} {
	return map[string]interface{}{
		"id":         a.ID,
		"name":       a.Name,
		"email":      a.Email(),
		"department": a.Department,
		"created_at": a.CreatedAt,
		"is_active":  a.IsActive,
	}
}
