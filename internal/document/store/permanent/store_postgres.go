// Package permanent implements the durable keyspace for verified documents.
// Records land here only after a compliance pass promotes them from staging.
package permanent

import (
	"context"
	"database/sql"
	"fmt"

	"vendorgate/internal/document/models"
	id "vendorgate/pkg/domain"
)

// PostgresStore persists verified document metadata in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed verified document store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, userID id.UserID, doc models.Document) error {
	query := `
		INSERT INTO verified_documents (user_id, name, category, storage_ref, content_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, name) DO UPDATE SET
			category = EXCLUDED.category,
			storage_ref = EXCLUDED.storage_ref,
			content_type = EXCLUDED.content_type,
			uploaded_at = EXCLUDED.uploaded_at
	`
	_, err := s.db.ExecContext(ctx, query,
		userID.String(), doc.Name, string(doc.Category), doc.StorageRef, doc.ContentType, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("add verified document: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, category, storage_ref, content_type, uploaded_at
		FROM verified_documents
		WHERE user_id = $1
		ORDER BY uploaded_at
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list verified documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		var category string
		if err := rows.Scan(&doc.Name, &category, &doc.StorageRef, &doc.ContentType, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan verified document: %w", err)
		}
		doc.Category = models.Category(category)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verified documents: %w", err)
	}
	return docs, nil
}
