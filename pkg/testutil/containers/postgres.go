//go:build integration

package containers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Schema is the DDL the durable stores expect. Integration tests apply it to
// a fresh container before exercising the PostgreSQL-backed stores.
const Schema = `
CREATE TABLE IF NOT EXISTS credentials (
	user_id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash BYTEA NOT NULL,
	disabled BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS users (
	user_id UUID PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	company_name TEXT NOT NULL,
	account_type TEXT NOT NULL,
	status TEXT NOT NULL,
	onboarding_complete BOOLEAN NOT NULL DEFAULT FALSE,
	admin_approved BOOLEAN NOT NULL DEFAULT TRUE,
	document_names TEXT[] NOT NULL DEFAULT '{}',
	document_count INTEGER NOT NULL DEFAULT 0,
	last_upload_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	last_updated TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS verified_documents (
	user_id UUID NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	storage_ref TEXT NOT NULL,
	content_type TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (user_id, name)
);

CREATE TABLE IF NOT EXISTS audit_reports (
	report_key TEXT PRIMARY KEY,
	identity TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	body JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_reports_identity_idx ON audit_reports (identity, created_at DESC);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts a PostgreSQL container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("vendorgate_test"),
		tcpostgres.WithUsername("vendorgate"),
		tcpostgres.WithPassword("vendorgate"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{
		Container: container,
		URL:       url,
		DB:        db,
	}
}

// Truncate clears every table. Use between tests to ensure isolation.
func (p *PostgresContainer) Truncate(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx,
		`TRUNCATE credentials, users, verified_documents, audit_reports`)
	return err
}
