package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taxease-service/internal/domain"
)

// PlanRepository defines persistence access for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	Update(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	ListActive(ctx context.Context) ([]*domain.Plan, error)
}

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository returns a Postgres-backed implementation.
func NewPlanRepository(pool *pgxpool.Pool) PlanRepository {
	return &planRepository{pool: pool}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	const query = `
        INSERT INTO plans (name, description, price, currency, features, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		plan.Name,
		plan.Description,
		plan.Price,
		plan.Currency,
		plan.Features,
		plan.IsActive,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *planRepository) Update(ctx context.Context, plan *domain.Plan) error {
	const query = `
        UPDATE plans SET name=$1, description=$2, price=$3, currency=$4, features=$5, is_active=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		plan.Name,
		plan.Description,
		plan.Price,
		plan.Currency,
		plan.Features,
		plan.IsActive,
		plan.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	const query = `
        SELECT id, name, description, price, currency, features, is_active, created_at, updated_at
        FROM plans WHERE id=$1`

	var plan domain.Plan
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.Price,
		&plan.Currency,
		&plan.Features,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) ListActive(ctx context.Context) ([]*domain.Plan, error) {
	const query = `
        SELECT id, name, description, price, currency, features, is_active, created_at, updated_at
        FROM plans WHERE is_active ORDER BY price`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Description,
			&plan.Price,
			&plan.Currency,
			&plan.Features,
			&plan.IsActive,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}
