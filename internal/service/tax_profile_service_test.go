package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/events"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

type fakeTaxProfileRepo struct {
	byID   map[string]*domain.TaxProfile
	nextID int
}

func newFakeTaxProfileRepo() *fakeTaxProfileRepo {
	return &fakeTaxProfileRepo{byID: make(map[string]*domain.TaxProfile)}
}

func (r *fakeTaxProfileRepo) Create(_ context.Context, profile *domain.TaxProfile) error {
	for _, existing := range r.byID {
		if existing.UserID == profile.UserID && existing.AssessmentYear == profile.AssessmentYear {
			return errUniqueConflict
		}
	}
	r.nextID++
	profile.ID = fmt.Sprintf("profile-%d", r.nextID)
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	copied := *profile
	r.byID[profile.ID] = &copied
	return nil
}

func (r *fakeTaxProfileRepo) Update(_ context.Context, profile *domain.TaxProfile) error {
	if _, ok := r.byID[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *profile
	r.byID[profile.ID] = &copied
	return nil
}

func (r *fakeTaxProfileRepo) GetByID(_ context.Context, id string) (*domain.TaxProfile, error) {
	if profile, ok := r.byID[id]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTaxProfileRepo) ListByUser(_ context.Context, userID string) ([]*domain.TaxProfile, error) {
	var out []*domain.TaxProfile
	for _, profile := range r.byID {
		if profile.UserID == userID {
			copied := *profile
			out = append(out, &copied)
		}
	}
	return out, nil
}

// racingTaxProfileRepo simulates a concurrent insert for the same
// (user, assessment year) hitting the unique index.
type racingTaxProfileRepo struct {
	*fakeTaxProfileRepo
}

func (r *racingTaxProfileRepo) Create(context.Context, *domain.TaxProfile) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "tax_profiles_user_id_assessment_year_key"}
}

func validTaxProfileInput() TaxProfileInput {
	return TaxProfileInput{
		AssessmentYear: "2023-2024",
		PAN:            "abcde1234f",
		FullName:       "Alice Kumar",
		DateOfBirth:    time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC),
		Address:        domain.Address{Line1: "1 Main St", City: "Pune", State: "MH", Pincode: "411001"},
		Income:         domain.Income{Salary: 1200000},
		Deductions:     domain.Deductions{Section80C: 150000},
	}
}

func TestTaxProfileCreate_NormalizesPAN(t *testing.T) {
	t.Parallel()

	svc := NewTaxProfileService(newFakeTaxProfileRepo(), nil)

	profile, err := svc.Create(context.Background(), "u1", validTaxProfileInput())
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", profile.PAN)
	assert.Equal(t, domain.TaxProfileStatusDraft, profile.Status)
	assert.Nil(t, profile.SubmittedAt)
}

func TestTaxProfileCreate_InvalidPAN(t *testing.T) {
	t.Parallel()

	svc := NewTaxProfileService(newFakeTaxProfileRepo(), nil)

	input := validTaxProfileInput()
	input.PAN = "1234ABCDE"
	_, err := svc.Create(context.Background(), "u1", input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestTaxProfileCreate_DuplicateRace(t *testing.T) {
	t.Parallel()

	repo := &racingTaxProfileRepo{fakeTaxProfileRepo: newFakeTaxProfileRepo()}
	svc := NewTaxProfileService(repo, nil)

	_, err := svc.Create(context.Background(), "u1", validTaxProfileInput())
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "DUPLICATE_TAX_PROFILE", de.Code)
	assert.Equal(t, "2023-2024", de.Details["assessment_year"])
}

func TestTaxProfileGet_OwnershipHidden(t *testing.T) {
	t.Parallel()

	repo := newFakeTaxProfileRepo()
	svc := NewTaxProfileService(repo, nil)

	profile, err := svc.Create(context.Background(), "u1", validTaxProfileInput())
	require.NoError(t, err)

	// another user sees not-found, not forbidden
	_, err = svc.Get(context.Background(), "u2", profile.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestTaxProfileSubmit(t *testing.T) {
	t.Parallel()

	repo := newFakeTaxProfileRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewTaxProfileService(repo, dispatcher)

	profile, err := svc.Create(context.Background(), "u1", validTaxProfileInput())
	require.NoError(t, err)

	submitted, err := svc.Submit(context.Background(), "u1", profile.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaxProfileStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventTaxProfileSubmitted, dispatcher.published[0].Type)

	// second submit is rejected
	_, err = svc.Submit(context.Background(), "u1", profile.ID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestTaxProfileUpdate_SubmittedRejected(t *testing.T) {
	t.Parallel()

	repo := newFakeTaxProfileRepo()
	svc := NewTaxProfileService(repo, nil)

	profile, err := svc.Create(context.Background(), "u1", validTaxProfileInput())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "u1", profile.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "u1", profile.ID, validTaxProfileInput())
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
