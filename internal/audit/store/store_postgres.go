// Package store persists audit reports. Durable reports are keyed
// <identity>_<unix-millis>; staged reports live in the staging keyspace until
// the account gate promotes or abandons them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"vendorgate/internal/audit/models"
	"vendorgate/pkg/platform/sentinel"
)

// PostgresStore persists audit reports in PostgreSQL. The report body is
// stored as JSONB; the identity and timestamp columns carry the key.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audit report store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, report models.Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal audit report: %w", err)
	}

	key := fmt.Sprintf("%s_%d", report.Identity, report.Timestamp.UnixMilli())
	query := `
		INSERT INTO audit_reports (report_key, identity, created_at, status, body)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (report_key) DO UPDATE SET
			status = EXCLUDED.status,
			body = EXCLUDED.body
	`
	_, err = s.db.ExecContext(ctx, query, key, report.Identity, report.Timestamp, string(report.Status), body)
	if err != nil {
		return fmt.Errorf("save audit report: %w", err)
	}
	return nil
}

func (s *PostgresStore) Latest(ctx context.Context, identity string) (models.Report, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM audit_reports
		WHERE identity = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, identity).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, sentinel.ErrNotFound
		}
		return models.Report{}, fmt.Errorf("load latest audit report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return models.Report{}, fmt.Errorf("decode audit report: %w", err)
	}
	return report, nil
}
