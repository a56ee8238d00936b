package events

import (
	"time"

	"github.com/spec-kit/taxease-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventTaxProfileSubmitted EventType = "tax_profile_submitted"
	EventDocumentUploaded    EventType = "document_uploaded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// TaxProfileSubmittedPayload payload.
type TaxProfileSubmittedPayload struct {
	TaxProfileID   string `json:"tax_profile_id"`
	AssessmentYear string `json:"assessment_year"`
}

// DocumentUploadedPayload payload.
type DocumentUploadedPayload struct {
	DocumentID   string                  `json:"document_id"`
	TaxProfileID *string                 `json:"tax_profile_id,omitempty"`
	FileType     domain.DocumentFileType `json:"file_type"`
	Size         int64                   `json:"size"`
}
