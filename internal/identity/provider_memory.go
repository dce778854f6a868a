package identity

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	id "vendorgate/pkg/domain"
	dErrors "vendorgate/pkg/domain-errors"
)

type credential struct {
	userID   id.UserID
	hash     []byte
	disabled bool
}

// MemoryProvider keeps credentials in memory for tests and database-free
// development runs.
type MemoryProvider struct {
	mu    sync.RWMutex
	creds map[string]credential
}

// NewMemory constructs an empty in-memory credential provider.
func NewMemory() *MemoryProvider {
	return &MemoryProvider{creds: make(map[string]credential)}
}

func (p *MemoryProvider) Register(_ context.Context, email string, passwordHash []byte) (id.UserID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.creds[email]; ok {
		return id.UserID{}, dErrors.New(dErrors.CodeConflict, "email already in use")
	}
	userID := id.NewUserID()
	p.creds[email] = credential{userID: userID, hash: passwordHash}
	return userID, nil
}

func (p *MemoryProvider) Authenticate(_ context.Context, email, password string) (id.UserID, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cred, ok := p.creds[email]
	if !ok {
		return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	if cred.disabled {
		return id.UserID{}, dErrors.New(dErrors.CodeForbidden, "account is disabled")
	}
	if bcrypt.CompareHashAndPassword(cred.hash, []byte(password)) != nil {
		return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	return cred.userID, nil
}

// Disable marks an email's credentials unusable. Test helper.
func (p *MemoryProvider) Disable(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cred := p.creds[email]
	cred.disabled = true
	p.creds[email] = cred
}
