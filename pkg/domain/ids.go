// Package domain holds the strongly typed identifiers shared across services.
// Wrapping uuid.UUID keeps a user ID from being passed where a session ID is
// expected.
package domain

import "github.com/google/uuid"

// UserID identifies a durable, compliance-approved user account.
type UserID uuid.UUID

// SessionID identifies a pending signup session. Sessions are ephemeral and
// live only in staging storage until compliance passes.
type SessionID uuid.UUID

// ReportID identifies a persisted audit report.
type ReportID uuid.UUID

func NewUserID() UserID       { return UserID(uuid.New()) }
func NewSessionID() SessionID { return SessionID(uuid.New()) }
func NewReportID() ReportID   { return ReportID(uuid.New()) }

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id ReportID) String() string  { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// ParseUserID parses the string form of a user ID.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseSessionID parses the string form of a session ID.
func ParseSessionID(s string) (SessionID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, err
	}
	return SessionID(u), nil
}
