package domain

import "time"

// TaxProfileStatus tracks the filing workflow state.
type TaxProfileStatus string

const (
	TaxProfileStatusDraft      TaxProfileStatus = "draft"
	TaxProfileStatusSubmitted  TaxProfileStatus = "submitted"
	TaxProfileStatusProcessing TaxProfileStatus = "processing"
	TaxProfileStatusCompleted  TaxProfileStatus = "completed"
)

// Address is the filer's postal address embedded in a tax profile.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Income breaks down declared income heads.
type Income struct {
	Salary       float64 `json:"salary"`
	Business     float64 `json:"business"`
	CapitalGains float64 `json:"capital_gains"`
	Other        float64 `json:"other"`
}

// Deductions breaks down claimed deductions.
type Deductions struct {
	Section80C float64 `json:"section_80c"`
	Section80D float64 `json:"section_80d"`
	Other      float64 `json:"other"`
}

// TaxProfile holds one user's filing data for a single assessment year.
// A user has at most one profile per assessment year.
type TaxProfile struct {
	ID             string
	UserID         string
	AssessmentYear string
	PAN            string
	FullName       string
	DateOfBirth    time.Time
	Address        Address
	Income         Income
	Deductions     Deductions
	Status         TaxProfileStatus
	SubmittedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Editable reports whether the profile still accepts field updates.
func (p *TaxProfile) Editable() bool {
	return p.Status == TaxProfileStatusDraft
}
