package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/api/dto"
	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/service"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

// UsersHandler exposes profile endpoints for the authenticated user.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// GetProfile handles GET /api/users/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, plan, err := h.users.GetProfile(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": profileResponse(user, plan)})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), claims.UserID(), service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"msg":  "Profile updated successfully",
		"user": profileResponse(user, nil),
	})
}

// SelectPlan handles PUT /api/users/plan.
func (h *UsersHandler) SelectPlan(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SelectPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PlanID == "" {
		return apperrors.NewValidationError("plan_id is required", nil)
	}

	user, err := h.users.SelectPlan(c.UserContext(), claims.UserID(), req.PlanID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"msg":  "Plan selected",
		"user": profileResponse(user, nil),
	})
}

func profileResponse(user *domain.User, plan *domain.Plan) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if plan != nil {
		p := dto.NewPlanResponse(plan)
		resp.Plan = &p
	}
	return resp
}
