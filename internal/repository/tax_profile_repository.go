package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taxease-service/internal/domain"
)

// TaxProfileRepository defines persistence access for tax profiles.
type TaxProfileRepository interface {
	Create(ctx context.Context, profile *domain.TaxProfile) error
	Update(ctx context.Context, profile *domain.TaxProfile) error
	GetByID(ctx context.Context, id string) (*domain.TaxProfile, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.TaxProfile, error)
}

type taxProfileRepository struct {
	pool *pgxpool.Pool
}

// NewTaxProfileRepository returns a Postgres-backed implementation.
func NewTaxProfileRepository(pool *pgxpool.Pool) TaxProfileRepository {
	return &taxProfileRepository{pool: pool}
}

const taxProfileColumns = `id, user_id, assessment_year, pan, full_name, date_of_birth,
        address, income, deductions, status, submitted_at, created_at, updated_at`

func (r *taxProfileRepository) Create(ctx context.Context, profile *domain.TaxProfile) error {
	const query = `
        INSERT INTO tax_profiles (user_id, assessment_year, pan, full_name, date_of_birth, address, income, deductions, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.AssessmentYear,
		profile.PAN,
		profile.FullName,
		profile.DateOfBirth,
		profile.Address,
		profile.Income,
		profile.Deductions,
		profile.Status,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *taxProfileRepository) Update(ctx context.Context, profile *domain.TaxProfile) error {
	const query = `
        UPDATE tax_profiles
        SET pan=$1, full_name=$2, date_of_birth=$3, address=$4, income=$5, deductions=$6, status=$7, submitted_at=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		profile.PAN,
		profile.FullName,
		profile.DateOfBirth,
		profile.Address,
		profile.Income,
		profile.Deductions,
		profile.Status,
		profile.SubmittedAt,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taxProfileRepository) GetByID(ctx context.Context, id string) (*domain.TaxProfile, error) {
	query := `SELECT ` + taxProfileColumns + ` FROM tax_profiles WHERE id=$1`
	return scanTaxProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *taxProfileRepository) ListByUser(ctx context.Context, userID string) ([]*domain.TaxProfile, error) {
	query := `SELECT ` + taxProfileColumns + ` FROM tax_profiles WHERE user_id=$1 ORDER BY assessment_year DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.TaxProfile
	for rows.Next() {
		profile, err := scanTaxProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanTaxProfile(row pgx.Row) (*domain.TaxProfile, error) {
	var profile domain.TaxProfile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.AssessmentYear,
		&profile.PAN,
		&profile.FullName,
		&profile.DateOfBirth,
		&profile.Address,
		&profile.Income,
		&profile.Deductions,
		&profile.Status,
		&profile.SubmittedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
