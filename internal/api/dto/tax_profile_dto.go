package dto

import (
	"time"

	"github.com/spec-kit/taxease-service/internal/domain"
)

// TaxProfileRequest payload for creating or updating a tax profile.
type TaxProfileRequest struct {
	AssessmentYear string            `json:"assessment_year"`
	PAN            string            `json:"pan"`
	FullName       string            `json:"full_name"`
	DateOfBirth    time.Time         `json:"date_of_birth"`
	Address        domain.Address    `json:"address"`
	Income         domain.Income     `json:"income"`
	Deductions     domain.Deductions `json:"deductions"`
}

// TaxProfileResponse is the outward view of a tax profile.
type TaxProfileResponse struct {
	ID             string            `json:"id"`
	AssessmentYear string            `json:"assessment_year"`
	PAN            string            `json:"pan"`
	FullName       string            `json:"full_name"`
	DateOfBirth    time.Time         `json:"date_of_birth"`
	Address        domain.Address    `json:"address"`
	Income         domain.Income     `json:"income"`
	Deductions     domain.Deductions `json:"deductions"`
	Status         string            `json:"status"`
	SubmittedAt    *time.Time        `json:"submitted_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewTaxProfileResponse maps a domain profile.
func NewTaxProfileResponse(profile *domain.TaxProfile) TaxProfileResponse {
	return TaxProfileResponse{
		ID:             profile.ID,
		AssessmentYear: profile.AssessmentYear,
		PAN:            profile.PAN,
		FullName:       profile.FullName,
		DateOfBirth:    profile.DateOfBirth,
		Address:        profile.Address,
		Income:         profile.Income,
		Deductions:     profile.Deductions,
		Status:         string(profile.Status),
		SubmittedAt:    profile.SubmittedAt,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}
