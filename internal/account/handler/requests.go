package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"vendorgate/internal/account/service"
	dErrors "vendorgate/pkg/domain-errors"
)

// SignupRequest is the HTTP request body for POST /signup.
type SignupRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	AccountType string `json:"account_type"`
}

// Validate checks the transport-level shape. Business rules (password
// strength, account type) are enforced by the service.
func (r *SignupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if !govalidator.StringLength(r.FirstName, "1", "100") {
		return dErrors.New(dErrors.CodeBadRequest, "first_name is required")
	}
	if !govalidator.StringLength(r.LastName, "1", "100") {
		return dErrors.New(dErrors.CodeBadRequest, "last_name is required")
	}
	if !govalidator.StringLength(r.Email, "1", "255") || !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid email")
	}
	if !govalidator.StringLength(r.CompanyName, "1", "255") {
		return dErrors.New(dErrors.CodeBadRequest, "company_name is required")
	}
	if strings.TrimSpace(r.AccountType) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "account_type is required")
	}
	return nil
}

// ToDomain converts the request into the service payload.
func (r *SignupRequest) ToDomain() service.SignupRequest {
	return service.SignupRequest{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Password:    r.Password,
		CompanyName: r.CompanyName,
		AccountType: r.AccountType,
	}
}

// LoginRequest is the HTTP request body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the transport-level shape.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if !govalidator.StringLength(r.Email, "1", "255") || !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid email")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "password is required")
	}
	return nil
}
