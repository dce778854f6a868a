// Package models defines user accounts and the pending signup record that
// precedes them.
package models

import (
	"time"

	id "vendorgate/pkg/domain"
)

// AccountType partitions the directory into the two onboarded sides plus
// admins.
type AccountType string

const (
	AccountVendor AccountType = "vendors"
	AccountClient AccountType = "clients"
	AccountAdmin  AccountType = "admin"
)

// Valid reports whether the value is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountVendor, AccountClient, AccountAdmin:
		return true
	}
	return false
}

// Status is the lifecycle state of a durable account.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// PendingSignup is the pre-compliance signup record. It exists only in
// staging storage and expires if the applicant never passes; nothing durable
// is written until the compliance gate opens.
type PendingSignup struct {
	SessionID    id.SessionID `json:"session_id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	CompanyName  string       `json:"company_name"`
	AccountType  AccountType  `json:"account_type"`
	PasswordHash []byte       `json:"password_hash"`
	CreatedAt    time.Time    `json:"created_at"`
}

// UploadSummary is the bookkeeping written onto a user record after their
// documents are promoted.
type UploadSummary struct {
	DocumentNames  []string  `json:"document_names"`
	DocumentCount  int       `json:"document_count"`
	LastUploadDate time.Time `json:"last_upload_date"`
}

// UserProfile is the durable account record, created exactly once, when
// compliance passes.
type UserProfile struct {
	UserID             id.UserID     `json:"user_id"`
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	Email              string        `json:"email"`
	CompanyName        string        `json:"company_name"`
	AccountType        AccountType   `json:"account_type"`
	Status             Status        `json:"status"`
	OnboardingComplete bool          `json:"onboarding_complete"`
	AdminApproved      bool          `json:"admin_approved"`
	Uploads            UploadSummary `json:"uploads"`
	CreatedAt          time.Time     `json:"created_at"`
	LastUpdated        time.Time     `json:"last_updated"`
}
