// Package models defines compliance document metadata and categories.
package models

import (
	"strings"
	"time"
)

// Category classifies a compliance document. Four categories are required for
// a complete submission; anything else lands in CategoryOther and is excluded
// from the required-set check.
type Category string

const (
	CategoryCybersecurity Category = "cybersecurity"
	CategoryCriminal      Category = "criminal"
	CategoryFinancial     Category = "financial"
	CategoryRisk          Category = "risk"
	CategoryOther         Category = "other"
)

// MaxDocumentAge is the staleness bound: documents older than this count
// against the rule-based score.
const MaxDocumentAge = 365 * 24 * time.Hour

// RequiredCategories returns the categories a complete submission must cover.
func RequiredCategories() []Category {
	return []Category{CategoryCybersecurity, CategoryCriminal, CategoryFinancial, CategoryRisk}
}

// ParseCategory maps a caller-supplied tag to a Category. Unrecognized tags
// map to CategoryOther rather than failing intake.
func ParseCategory(tag string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(tag))) {
	case CategoryCybersecurity:
		return CategoryCybersecurity
	case CategoryCriminal:
		return CategoryCriminal
	case CategoryFinancial:
		return CategoryFinancial
	case CategoryRisk:
		return CategoryRisk
	default:
		return CategoryOther
	}
}

// ClassifyFilename guesses a category from filename substrings. This is a
// convenience default for uploads that arrive without an explicit tag; the
// caller-supplied tag always wins when present.
func ClassifyFilename(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "cyber", "soc2", "soc-2", "iso27001", "iso-27001", "security"):
		return CategoryCybersecurity
	case containsAny(lower, "criminal", "background"):
		return CategoryCriminal
	case containsAny(lower, "financial", "finance", "audit"):
		return CategoryFinancial
	case containsAny(lower, "risk", "insurance"):
		return CategoryRisk
	default:
		return CategoryOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Document is the metadata record for one uploaded compliance document. The
// bytes themselves live in blob storage at StorageRef.
type Document struct {
	Category    Category  `json:"category"`
	StorageRef  string    `json:"storage_ref"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Stale reports whether the document exceeded MaxDocumentAge at the given time.
func (d Document) Stale(now time.Time) bool {
	return now.Sub(d.UploadedAt) > MaxDocumentAge
}

// CoversRequired reports whether the document set includes every required
// category.
func CoversRequired(docs []Document) bool {
	seen := make(map[Category]bool, len(docs))
	for _, d := range docs {
		seen[d.Category] = true
	}
	for _, required := range RequiredCategories() {
		if !seen[required] {
			return false
		}
	}
	return true
}
