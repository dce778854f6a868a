package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	id "vendorgate/pkg/domain"
	dErrors "vendorgate/pkg/domain-errors"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresProvider stores credentials in PostgreSQL.
type PostgresProvider struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential provider.
func NewPostgres(db *sql.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) Register(ctx context.Context, email string, passwordHash []byte) (id.UserID, error) {
	userID := id.NewUserID()
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO credentials (user_id, email, password_hash) VALUES ($1, $2, $3)`,
		userID.String(), email, passwordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return id.UserID{}, dErrors.New(dErrors.CodeConflict, "email already in use")
		}
		return id.UserID{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "create credentials")
	}
	return userID, nil
}

func (p *PostgresProvider) Authenticate(ctx context.Context, email, password string) (id.UserID, error) {
	var (
		rawUserID string
		hash      []byte
		disabled  bool
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT user_id, password_hash, disabled FROM credentials WHERE email = $1`,
		email,
	).Scan(&rawUserID, &hash, &disabled)
	if errors.Is(err, sql.ErrNoRows) {
		return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	if err != nil {
		return id.UserID{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "load credentials")
	}

	if disabled {
		return id.UserID{}, dErrors.New(dErrors.CodeForbidden, "account is disabled")
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	userID, err := id.ParseUserID(rawUserID)
	if err != nil {
		return id.UserID{}, fmt.Errorf("parse user id: %w", err)
	}
	return userID, nil
}
