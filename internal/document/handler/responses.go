package handler

import (
	"time"

	"vendorgate/internal/document/models"
)

// DocumentResponse is one staged document in upload and list responses.
type DocumentResponse struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// FromDocuments converts staged documents to the HTTP response shape. The
// storage reference stays internal.
func FromDocuments(docs []models.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, DocumentResponse{
			Name:        doc.Name,
			Category:    string(doc.Category),
			ContentType: doc.ContentType,
			UploadedAt:  doc.UploadedAt,
		})
	}
	return out
}
