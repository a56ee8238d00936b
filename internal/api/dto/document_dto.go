package dto

import (
	"time"

	"github.com/spec-kit/taxease-service/internal/domain"
)

// DocumentResponse is the outward view of an uploaded document.
type DocumentResponse struct {
	ID           string    `json:"id"`
	TaxProfileID *string   `json:"tax_profile_id,omitempty"`
	Type         string    `json:"type"`
	OriginalName string    `json:"original_name"`
	FileType     string    `json:"file_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

// DownloadURLResponse carries a presigned download URL.
type DownloadURLResponse struct {
	URL string `json:"url"`
}

// NewDocumentResponse maps a domain document. The storage key stays internal;
// downloads go through presigned URLs.
func NewDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID,
		TaxProfileID: doc.TaxProfileID,
		Type:         doc.Type,
		OriginalName: doc.OriginalName,
		FileType:     string(doc.FileType),
		Size:         doc.Size,
		CreatedAt:    doc.CreatedAt,
	}
}
