package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/events"
	"github.com/spec-kit/taxease-service/internal/repository"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
	"github.com/spec-kit/taxease-service/pkg/validate"
)

// TaxProfileInput carries the writable fields of a tax profile.
type TaxProfileInput struct {
	AssessmentYear string
	PAN            string
	FullName       string
	DateOfBirth    time.Time
	Address        domain.Address
	Income         domain.Income
	Deductions     domain.Deductions
}

// TaxProfileService manages per-assessment-year filing profiles.
type TaxProfileService struct {
	profiles   repository.TaxProfileRepository
	dispatcher events.Dispatcher
}

// NewTaxProfileService builds the service.
func NewTaxProfileService(profiles repository.TaxProfileRepository, dispatcher events.Dispatcher) *TaxProfileService {
	return &TaxProfileService{profiles: profiles, dispatcher: dispatcher}
}

// Create opens a draft profile for the given assessment year.
func (s *TaxProfileService) Create(ctx context.Context, userID string, input TaxProfileInput) (*domain.TaxProfile, error) {
	if err := validateTaxProfileInput(input); err != nil {
		return nil, err
	}

	profile := &domain.TaxProfile{
		UserID:         userID,
		AssessmentYear: input.AssessmentYear,
		PAN:            validate.NormalizePAN(input.PAN),
		FullName:       input.FullName,
		DateOfBirth:    input.DateOfBirth,
		Address:        input.Address,
		Income:         input.Income,
		Deductions:     input.Deductions,
		Status:         domain.TaxProfileStatusDraft,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if repository.IsUniqueViolation(err, "tax_profiles_user_id_assessment_year_key") {
			return nil, apperrors.NewDuplicateTaxProfile(input.AssessmentYear)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return profile, nil
}

// List returns the caller's profiles, newest assessment year first.
func (s *TaxProfileService) List(ctx context.Context, userID string) ([]*domain.TaxProfile, error) {
	profiles, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return profiles, nil
}

// Get loads one profile, enforcing ownership.
func (s *TaxProfileService) Get(ctx context.Context, userID, profileID string) (*domain.TaxProfile, error) {
	return s.getOwned(ctx, userID, profileID)
}

// Update replaces the writable fields of a draft profile.
func (s *TaxProfileService) Update(ctx context.Context, userID, profileID string, input TaxProfileInput) (*domain.TaxProfile, error) {
	if err := validateTaxProfileInput(input); err != nil {
		return nil, err
	}

	profile, err := s.getOwned(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if !profile.Editable() {
		return nil, apperrors.NewValidationError("tax profile is no longer editable", nil)
	}

	profile.PAN = validate.NormalizePAN(input.PAN)
	profile.FullName = input.FullName
	profile.DateOfBirth = input.DateOfBirth
	profile.Address = input.Address
	profile.Income = input.Income
	profile.Deductions = input.Deductions

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return profile, nil
}

// Submit moves a draft profile into the submitted state.
func (s *TaxProfileService) Submit(ctx context.Context, userID, profileID string) (*domain.TaxProfile, error) {
	profile, err := s.getOwned(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if profile.Status != domain.TaxProfileStatusDraft {
		return nil, apperrors.NewValidationError("only draft profiles can be submitted", nil)
	}

	now := time.Now()
	profile.Status = domain.TaxProfileStatusSubmitted
	profile.SubmittedAt = &now

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventTaxProfileSubmitted, userID,
			events.TaxProfileSubmittedPayload{TaxProfileID: profile.ID, AssessmentYear: profile.AssessmentYear}))
	}
	return profile, nil
}

func (s *TaxProfileService) getOwned(ctx context.Context, userID, profileID string) (*domain.TaxProfile, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tax profile", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	// Another user's profile is indistinguishable from a missing one.
	if profile.UserID != userID {
		return nil, apperrors.NewNotFound("tax profile", nil)
	}
	return profile, nil
}

func validateTaxProfileInput(input TaxProfileInput) error {
	if input.AssessmentYear == "" || input.FullName == "" || input.DateOfBirth.IsZero() {
		return apperrors.NewValidationError("assessment_year, full_name and date_of_birth are required", nil)
	}
	if !validate.PAN(input.PAN) {
		return apperrors.NewValidationError("invalid PAN", map[string]any{"pan": input.PAN})
	}
	return nil
}
