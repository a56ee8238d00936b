package dto

import (
	"time"

	"github.com/spec-kit/taxease-service/internal/domain"
)

// PlanRequest payload for creating a plan.
type PlanRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"is_active"`
}

// PlanUpdateRequest payload for partially updating a plan. Absent fields are
// left unchanged; explicit zero values (price 0, empty description) are applied.
type PlanUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"is_active"`
}

// PlanResponse is the outward view of a plan.
type PlanResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Features    []string  `json:"features"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPlanResponse maps a domain plan.
func NewPlanResponse(plan *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:          plan.ID,
		Name:        plan.Name,
		Description: plan.Description,
		Price:       plan.Price,
		Currency:    plan.Currency,
		Features:    plan.Features,
		IsActive:    plan.IsActive,
		CreatedAt:   plan.CreatedAt,
	}
}
