// Package service implements the account gate: signups stay staged until a
// compliance run passes, and only then does a durable account exist.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"vendorgate/internal/account/models"
	auditmodels "vendorgate/internal/audit/models"
	compliancemodels "vendorgate/internal/compliance/models"
	docmodels "vendorgate/internal/document/models"
	"vendorgate/internal/identity"
	"vendorgate/internal/platform/metrics"
	id "vendorgate/pkg/domain"
	dErrors "vendorgate/pkg/domain-errors"
	"vendorgate/pkg/platform/sentinel"
	"vendorgate/pkg/requestcontext"
)

// PendingStore stages signup records until compliance passes.
type PendingStore interface {
	Save(ctx context.Context, signup models.PendingSignup, ttl time.Duration) error
	Find(ctx context.Context, sessionID id.SessionID) (models.PendingSignup, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
}

// UserStore is the durable user profile keyspace.
type UserStore interface {
	Save(ctx context.Context, profile models.UserProfile) error
	FindByID(ctx context.Context, userID id.UserID) (models.UserProfile, error)
	ListByType(ctx context.Context, accountType models.AccountType, approvedOnly bool) ([]models.UserProfile, error)
	ListAll(ctx context.Context) ([]models.UserProfile, error)
}

// ComplianceRunner scores a session's staged documents.
type ComplianceRunner interface {
	Run(ctx context.Context, sessionID id.SessionID) (compliancemodels.Result, error)
}

// Auditor builds the narrative report for a run and later re-keys it to the
// activated user.
type Auditor interface {
	Generate(ctx context.Context, sessionID id.SessionID, companyName string, result compliancemodels.Result) (auditmodels.Report, error)
	Promote(ctx context.Context, sessionID id.SessionID, userID id.UserID) error
}

// Intake promotes staged documents to permanent storage on activation.
type Intake interface {
	Promote(ctx context.Context, sessionID id.SessionID, userID id.UserID) ([]docmodels.Document, error)
}

// TokenIssuer mints access tokens at sign-in.
type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, accountType string) (string, error)
}

// SignupRequest is the applicant-supplied signup payload.
type SignupRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	CompanyName string
	AccountType string
}

// Verdict is the outcome of a compliance run. UserID is set only when the run
// passed and an account was created.
type Verdict struct {
	Passed bool
	Report auditmodels.Report
	UserID id.UserID
}

// Session is the result of a successful sign-in.
type Session struct {
	Token   string
	Profile models.UserProfile
}

// GateService orchestrates the signup-to-account lifecycle.
type GateService struct {
	pending    PendingStore
	users      UserStore
	identities identity.Provider
	compliance ComplianceRunner
	auditor    Auditor
	intake     Intake
	tokens     TokenIssuer
	logger     *slog.Logger
	metrics    *metrics.Metrics
	stagingTTL time.Duration
}

// Option configures a GateService.
type Option func(*GateService)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *GateService) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *GateService) { s.metrics = m }
}

// New constructs a GateService.
func New(
	pending PendingStore,
	users UserStore,
	identities identity.Provider,
	compliance ComplianceRunner,
	auditor Auditor,
	intake Intake,
	tokens TokenIssuer,
	stagingTTL time.Duration,
	opts ...Option,
) (*GateService, error) {
	if pending == nil {
		return nil, fmt.Errorf("pending store is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if identities == nil {
		return nil, fmt.Errorf("identity provider is required")
	}
	if compliance == nil {
		return nil, fmt.Errorf("compliance runner is required")
	}
	if auditor == nil {
		return nil, fmt.Errorf("auditor is required")
	}
	if intake == nil {
		return nil, fmt.Errorf("intake is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token issuer is required")
	}

	s := &GateService{
		pending:    pending,
		users:      users,
		identities: identities,
		compliance: compliance,
		auditor:    auditor,
		intake:     intake,
		tokens:     tokens,
		logger:     slog.Default(),
		stagingTTL: stagingTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StartSignup validates the applicant's details, hashes the password, and
// stages the signup under a fresh session ID. Nothing durable is written; the
// staged record expires on its own if the applicant never passes compliance.
func (s *GateService) StartSignup(ctx context.Context, req SignupRequest) (id.SessionID, error) {
	if err := validateSignup(req); err != nil {
		return id.SessionID{}, err
	}

	hash, err := identity.HashPassword(req.Email, req.Password)
	if err != nil {
		return id.SessionID{}, err
	}

	signup := models.PendingSignup{
		SessionID:    id.NewSessionID(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		CompanyName:  strings.TrimSpace(req.CompanyName),
		AccountType:  models.AccountType(req.AccountType),
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.pending.Save(ctx, signup, s.stagingTTL); err != nil {
		return id.SessionID{}, fmt.Errorf("stage signup: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SignupsStarted.Inc()
	}
	s.logger.InfoContext(ctx, "signup staged",
		"session_id", signup.SessionID.String(),
		"account_type", string(signup.AccountType),
	)
	return signup.SessionID, nil
}

// RunCompliance scores the session's staged documents and, on a pass, opens
// the gate: credentials are registered, the profile is written, documents and
// the audit report are promoted, and the staged signup is cleared. On a fail
// the staged signup and documents stay put so the applicant can retry with a
// better document set before the staging TTL runs out.
func (s *GateService) RunCompliance(ctx context.Context, sessionID id.SessionID) (Verdict, error) {
	signup, err := s.pending.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Verdict{}, dErrors.New(dErrors.CodeNotFound, "signup session not found or expired")
		}
		return Verdict{}, fmt.Errorf("load pending signup: %w", err)
	}

	result, err := s.compliance.Run(ctx, sessionID)
	if err != nil {
		return Verdict{}, fmt.Errorf("compliance run: %w", err)
	}

	report, err := s.auditor.Generate(ctx, sessionID, signup.CompanyName, result)
	if err != nil {
		return Verdict{}, fmt.Errorf("generate audit report: %w", err)
	}

	verdict := Verdict{Passed: result.Passed, Report: report}
	if !result.Passed {
		s.logger.InfoContext(ctx, "compliance failed, signup stays staged",
			"session_id", sessionID.String(),
			"score", result.Score,
		)
		return verdict, nil
	}

	userID, err := s.activate(ctx, signup)
	if err != nil {
		return Verdict{}, err
	}
	verdict.UserID = userID
	return verdict, nil
}

// activate performs the one-time durable writes for a passed signup.
func (s *GateService) activate(ctx context.Context, signup models.PendingSignup) (id.UserID, error) {
	userID, err := s.identities.Register(ctx, signup.Email, signup.PasswordHash)
	if err != nil {
		return id.UserID{}, err
	}

	docs, err := s.intake.Promote(ctx, signup.SessionID, userID)
	if err != nil {
		return id.UserID{}, fmt.Errorf("promote documents: %w", err)
	}

	now := requestcontext.Now(ctx)
	profile := models.UserProfile{
		UserID:             userID,
		FirstName:          signup.FirstName,
		LastName:           signup.LastName,
		Email:              signup.Email,
		CompanyName:        signup.CompanyName,
		AccountType:        signup.AccountType,
		Status:             models.StatusActive,
		OnboardingComplete: true,
		AdminApproved:      true,
		Uploads:            uploadSummary(docs, now),
		CreatedAt:          now,
		LastUpdated:        now,
	}
	if err := s.users.Save(ctx, profile); err != nil {
		return id.UserID{}, fmt.Errorf("save user profile: %w", err)
	}

	if err := s.auditor.Promote(ctx, signup.SessionID, userID); err != nil {
		return id.UserID{}, fmt.Errorf("promote audit report: %w", err)
	}
	if err := s.pending.Delete(ctx, signup.SessionID); err != nil {
		return id.UserID{}, fmt.Errorf("clear staged signup: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AccountsActivated.Inc()
	}
	s.logger.InfoContext(ctx, "account activated",
		"session_id", signup.SessionID.String(),
		"user_id", userID.String(),
		"account_type", string(signup.AccountType),
	)
	return userID, nil
}

// SignIn verifies credentials and returns the profile with a fresh access
// token.
func (s *GateService) SignIn(ctx context.Context, email, password string) (Session, error) {
	userID, err := s.identities.Authenticate(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		return Session{}, err
	}

	profile, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Session{}, dErrors.New(dErrors.CodeNotFound, "user profile not found")
		}
		return Session{}, fmt.Errorf("load user profile: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(userID, string(profile.AccountType))
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: token, Profile: profile}, nil
}

// Profile returns the durable profile for a user.
func (s *GateService) Profile(ctx context.Context, userID id.UserID) (models.UserProfile, error) {
	profile, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.UserProfile{}, dErrors.New(dErrors.CodeNotFound, "user profile not found")
		}
		return models.UserProfile{}, fmt.Errorf("load user profile: %w", err)
	}
	return profile, nil
}

// VisibleUsers lists the accounts the caller is allowed to see: admins see
// everyone, vendors see clients, and clients see vendors. Non-admin callers
// only see admin-approved profiles.
func (s *GateService) VisibleUsers(ctx context.Context) ([]models.UserProfile, error) {
	switch models.AccountType(requestcontext.AccountType(ctx)) {
	case models.AccountAdmin:
		return s.users.ListAll(ctx)
	case models.AccountVendor:
		return s.users.ListByType(ctx, models.AccountClient, true)
	case models.AccountClient:
		return s.users.ListByType(ctx, models.AccountVendor, true)
	}
	return nil, dErrors.New(dErrors.CodeForbidden, "account type cannot browse the directory")
}

// Directory lists accounts of one type. Admin callers also see profiles an
// admin has not approved.
func (s *GateService) Directory(ctx context.Context, accountType models.AccountType) ([]models.UserProfile, error) {
	if !accountType.Valid() || accountType == models.AccountAdmin {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown directory")
	}
	approvedOnly := requestcontext.AccountType(ctx) != string(models.AccountAdmin)
	return s.users.ListByType(ctx, accountType, approvedOnly)
}

func validateSignup(req SignupRequest) error {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "first and last name are required")
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "company name is required")
	}
	if !govalidator.IsEmail(req.Email) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid email address")
	}
	accountType := models.AccountType(req.AccountType)
	if !accountType.Valid() || accountType == models.AccountAdmin {
		return dErrors.New(dErrors.CodeBadRequest, "account type must be vendors or clients")
	}
	return nil
}

func uploadSummary(docs []docmodels.Document, now time.Time) models.UploadSummary {
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}
	summary := models.UploadSummary{
		DocumentNames: names,
		DocumentCount: len(docs),
	}
	if len(docs) > 0 {
		summary.LastUploadDate = now
	}
	return summary
}
