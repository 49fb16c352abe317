package services

import (
	"apachemart/app/models"
	"apachemart/app/repositories"
	"apachemart/pkg/auth"
)

// TokenPair is the access/refresh pair issued on a successful login.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService turns repository authentication results into signed tokens.
type AuthService struct {
	customers *repositories.CustomerRepository
	admins    *repositories.AdminRepository
}

func NewAuthService(customers *repositories.CustomerRepository, admins *repositories.AdminRepository) *AuthService {
	return &AuthService{customers: customers, admins: admins}
}

func issue(userID uint, role string) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, role)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// LoginCustomer checks credentials and issues a token pair. Wrong credentials
// return (nil, nil, nil); the caller maps that to 401 without learning
// whether the email or the password was wrong.
func (s *AuthService) LoginCustomer(email, password string) (*TokenPair, *models.Customer, error) {
	customer, err := s.customers.AuthenticateCustomer(email, password)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, nil
	}

	pair, err := issue(customer.ID, customer.Role())
	if err != nil {
		return nil, nil, err
	}
	return pair, customer, nil
}

// LoginAdmin checks credentials and issues a token pair for the admin role.
func (s *AuthService) LoginAdmin(email, password string) (*TokenPair, *models.Admin, error) {
	admin, err := s.admins.AuthenticateAdmin(email, password)
	if err != nil {
		return nil, nil, err
	}
	if admin == nil {
		return nil, nil, nil
	}

	pair, err := issue(admin.ID, admin.Role())
	if err != nil {
		return nil, nil, err
	}
	return pair, admin, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. Access
// tokens are rejected here, so a leaked short-lived token cannot extend
// itself.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := auth.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	return auth.GenerateToken(claims.UserID, claims.Role)
}
