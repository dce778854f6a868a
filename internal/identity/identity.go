// Package identity owns account credentials. Creation and authentication are
// separated from the profile store so the gate can create a login atomically
// with the first durable profile write.
package identity

import (
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"
	"golang.org/x/crypto/bcrypt"

	id "vendorgate/pkg/domain"
	dErrors "vendorgate/pkg/domain-errors"
)

// Provider registers and verifies account credentials. Registration takes a
// hash, not a plaintext password: the password is hashed when the signup is
// staged and the plaintext is never stored.
type Provider interface {
	Register(ctx context.Context, email string, passwordHash []byte) (id.UserID, error)
	Authenticate(ctx context.Context, email, password string) (id.UserID, error)
}

// MinPasswordLength is the weakest password accepted at signup.
const MinPasswordLength = 8

// HashPassword validates and hashes a signup password.
func HashPassword(email, password string) ([]byte, error) {
	if !govalidator.IsEmail(email) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid email address")
	}
	if len(password) < MinPasswordLength {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
