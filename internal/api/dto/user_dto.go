package dto

import "time"

// UpdateProfileRequest payload for PUT /api/users/profile. Absent fields are
// left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// SelectPlanRequest payload for PUT /api/users/plan.
type SelectPlanRequest struct {
	PlanID string `json:"plan_id"`
}

// ProfileResponse is the full outward view of the current user.
type ProfileResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	Plan      *PlanResponse `json:"plan,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
