// Package users is the durable user profile keyspace.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"vendorgate/internal/account/models"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/platform/sentinel"
)

// PostgresStore persists user profiles in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, profile models.UserProfile) error {
	query := `
		INSERT INTO users (
			user_id, first_name, last_name, email, company_name, account_type,
			status, onboarding_complete, admin_approved,
			document_names, document_count, last_upload_date,
			created_at, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			company_name = EXCLUDED.company_name,
			account_type = EXCLUDED.account_type,
			status = EXCLUDED.status,
			onboarding_complete = EXCLUDED.onboarding_complete,
			admin_approved = EXCLUDED.admin_approved,
			document_names = EXCLUDED.document_names,
			document_count = EXCLUDED.document_count,
			last_upload_date = EXCLUDED.last_upload_date,
			last_updated = EXCLUDED.last_updated
	`
	var lastUpload sql.NullTime
	if !profile.Uploads.LastUploadDate.IsZero() {
		lastUpload = sql.NullTime{Time: profile.Uploads.LastUploadDate, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query,
		profile.UserID.String(), profile.FirstName, profile.LastName, profile.Email,
		profile.CompanyName, string(profile.AccountType), string(profile.Status),
		profile.OnboardingComplete, profile.AdminApproved,
		pq.Array(profile.Uploads.DocumentNames), profile.Uploads.DocumentCount, lastUpload,
		profile.CreatedAt, profile.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("save user profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM users WHERE user_id = $1`, userID.String())
	return scanProfile(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM users WHERE email = $1`, email)
	return scanProfile(row)
}

// ListByType returns users of one account type. When approvedOnly is set,
// profiles explicitly disapproved by an admin are excluded.
func (s *PostgresStore) ListByType(ctx context.Context, accountType models.AccountType, approvedOnly bool) ([]models.UserProfile, error) {
	query := selectColumns + ` FROM users WHERE account_type = $1`
	if approvedOnly {
		query += ` AND admin_approved`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("list users by type: %w", err)
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return collectProfiles(rows)
}

const selectColumns = `
	SELECT user_id, first_name, last_name, email, company_name, account_type,
		status, onboarding_complete, admin_approved,
		document_names, document_count, last_upload_date,
		created_at, last_updated
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.UserProfile, error) {
	var (
		profile     models.UserProfile
		rawUserID   string
		accountType string
		status      string
		docNames    pq.StringArray
		lastUpload  sql.NullTime
	)
	err := row.Scan(
		&rawUserID, &profile.FirstName, &profile.LastName, &profile.Email,
		&profile.CompanyName, &accountType, &status,
		&profile.OnboardingComplete, &profile.AdminApproved,
		&docNames, &profile.Uploads.DocumentCount, &lastUpload,
		&profile.CreatedAt, &profile.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, sentinel.ErrNotFound
		}
		return models.UserProfile{}, fmt.Errorf("scan user profile: %w", err)
	}

	userID, err := id.ParseUserID(rawUserID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("parse user id: %w", err)
	}
	profile.UserID = userID
	profile.AccountType = models.AccountType(accountType)
	profile.Status = models.Status(status)
	profile.Uploads.DocumentNames = docNames
	if lastUpload.Valid {
		profile.Uploads.LastUploadDate = lastUpload.Time
	}
	return profile, nil
}

func collectProfiles(rows *sql.Rows) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return profiles, nil
}
