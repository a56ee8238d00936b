package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/persistence"
	"github.com/spec-kit/taxease-service/internal/repository"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

const (
	planCacheKey = "plans:active"
	planCacheTTL = 5 * time.Minute
)

// PlanInput carries the writable fields of a new plan.
type PlanInput struct {
	Name        string
	Description string
	Price       float64
	Currency    string
	Features    []string
	IsActive    *bool
}

// PlanUpdate carries the optional fields of a plan update. Absent fields are
// left unchanged.
type PlanUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Currency    *string
	Features    []string
	IsActive    *bool
}

// PlanService serves the plan catalog, caching the public listing in Redis.
type PlanService struct {
	plans  repository.PlanRepository
	cache  persistence.Cache
	logger *zap.Logger
}

// NewPlanService builds the service. A nil cache disables caching.
func NewPlanService(plans repository.PlanRepository, cache persistence.Cache, logger *zap.Logger) *PlanService {
	return &PlanService{plans: plans, cache: cache, logger: logger}
}

// ListActive returns active plans, served from cache when fresh.
func (s *PlanService) ListActive(ctx context.Context) ([]*domain.Plan, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, planCacheKey); err == nil {
			var plans []*domain.Plan
			if err := json.Unmarshal(raw, &plans); err == nil {
				return plans, nil
			}
			// corrupt entry; fall through to the store
		} else if !errors.Is(err, persistence.ErrCacheMiss) {
			s.logger.Warn("plan cache read failed", zap.Error(err))
		}
	}

	plans, err := s.plans.ListActive(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(plans); err == nil {
			if err := s.cache.Set(ctx, planCacheKey, raw, planCacheTTL); err != nil {
				s.logger.Warn("plan cache write failed", zap.Error(err))
			}
		}
	}
	return plans, nil
}

// Create adds a plan to the catalog.
func (s *PlanService) Create(ctx context.Context, input PlanInput) (*domain.Plan, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price cannot be negative", nil)
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	plan := &domain.Plan{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Currency:    currency,
		Features:    input.Features,
		IsActive:    active,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.invalidate(ctx)
	return plan, nil
}

// Update applies a partial update to an existing plan.
func (s *PlanService) Update(ctx context.Context, id string, update PlanUpdate) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("plan", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		plan.Name = *update.Name
	}
	if update.Description != nil {
		plan.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, apperrors.NewValidationError("price cannot be negative", nil)
		}
		plan.Price = *update.Price
	}
	if update.Currency != nil {
		if *update.Currency == "" {
			return nil, apperrors.NewValidationError("currency cannot be empty", nil)
		}
		plan.Currency = *update.Currency
	}
	if update.Features != nil {
		plan.Features = update.Features
	}
	if update.IsActive != nil {
		plan.IsActive = *update.IsActive
	}

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.invalidate(ctx)
	return plan, nil
}

func (s *PlanService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, planCacheKey); err != nil {
		s.logger.Warn("plan cache invalidation failed", zap.Error(err))
	}
}
