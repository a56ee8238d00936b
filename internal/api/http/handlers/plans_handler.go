package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/api/dto"
	"github.com/spec-kit/taxease-service/internal/service"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

// PlansHandler exposes the plan catalog.
type PlansHandler struct {
	plans *service.PlanService
}

// NewPlansHandler constructs handler.
func NewPlansHandler(planService *service.PlanService) *PlansHandler {
	return &PlansHandler{plans: planService}
}

// List handles GET /api/plans.
func (h *PlansHandler) List(c *fiber.Ctx) error {
	plans, err := h.plans.ListActive(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, dto.NewPlanResponse(plan))
	}
	return c.JSON(fiber.Map{"plans": out})
}

// Create handles POST /api/plans (admin only).
func (h *PlansHandler) Create(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	plan, err := h.plans.Create(c.UserContext(), planInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"plan": dto.NewPlanResponse(plan)})
}

// Update handles PUT /api/plans/:id (admin only).
func (h *PlansHandler) Update(c *fiber.Ctx) error {
	var req dto.PlanUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	plan, err := h.plans.Update(c.UserContext(), c.Params("id"), service.PlanUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Features:    req.Features,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"plan": dto.NewPlanResponse(plan)})
}

func planInput(req dto.PlanRequest) service.PlanInput {
	return service.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Features:    req.Features,
		IsActive:    req.IsActive,
	}
}
