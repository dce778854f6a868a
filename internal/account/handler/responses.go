package handler

import (
	"time"

	"vendorgate/internal/account/models"
	"vendorgate/internal/account/service"
	auditmodels "vendorgate/internal/audit/models"
)

// SignupResponse is the HTTP response for POST /signup.
type SignupResponse struct {
	SessionID string `json:"session_id"`
}

// VerdictResponse is the HTTP response for POST /signup/{sessionID}/verify.
type VerdictResponse struct {
	Passed bool               `json:"passed"`
	UserID string             `json:"user_id,omitempty"`
	Report auditmodels.Report `json:"report"`
}

// FromVerdict converts a gate verdict to an HTTP response.
func FromVerdict(verdict service.Verdict) VerdictResponse {
	resp := VerdictResponse{
		Passed: verdict.Passed,
		Report: verdict.Report,
	}
	if !verdict.UserID.IsNil() {
		resp.UserID = verdict.UserID.String()
	}
	return resp
}

// LoginResponse is the HTTP response for POST /login.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// ProfileResponse is the user profile portion of account responses.
type ProfileResponse struct {
	UserID             string    `json:"user_id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Email              string    `json:"email"`
	CompanyName        string    `json:"company_name"`
	AccountType        string    `json:"account_type"`
	Status             string    `json:"status"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	DocumentCount      int       `json:"document_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// FromProfile converts a domain profile to an HTTP response.
func FromProfile(profile models.UserProfile) ProfileResponse {
	return ProfileResponse{
		UserID:             profile.UserID.String(),
		FirstName:          profile.FirstName,
		LastName:           profile.LastName,
		Email:              profile.Email,
		CompanyName:        profile.CompanyName,
		AccountType:        string(profile.AccountType),
		Status:             string(profile.Status),
		OnboardingComplete: profile.OnboardingComplete,
		DocumentCount:      profile.Uploads.DocumentCount,
		CreatedAt:          profile.CreatedAt,
	}
}

// FromProfiles converts a profile list for directory responses.
func FromProfiles(profiles []models.UserProfile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, FromProfile(profile))
	}
	return out
}
