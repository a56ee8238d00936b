package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/api/dto"
	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/service"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

// TaxProfilesHandler exposes tax-profile CRUD for the authenticated user.
type TaxProfilesHandler struct {
	profiles *service.TaxProfileService
}

// NewTaxProfilesHandler constructs handler.
func NewTaxProfilesHandler(profileService *service.TaxProfileService) *TaxProfilesHandler {
	return &TaxProfilesHandler{profiles: profileService}
}

// Create handles POST /api/tax-profiles.
func (h *TaxProfilesHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TaxProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.profiles.Create(c.UserContext(), claims.UserID(), taxProfileInput(req))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"tax_profile": dto.NewTaxProfileResponse(profile)})
}

// List handles GET /api/tax-profiles.
func (h *TaxProfilesHandler) List(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profiles, err := h.profiles.List(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}

	out := make([]dto.TaxProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, dto.NewTaxProfileResponse(profile))
	}
	return c.JSON(fiber.Map{"tax_profiles": out})
}

// Get handles GET /api/tax-profiles/:id.
func (h *TaxProfilesHandler) Get(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.profiles.Get(c.UserContext(), claims.UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tax_profile": dto.NewTaxProfileResponse(profile)})
}

// Update handles PUT /api/tax-profiles/:id.
func (h *TaxProfilesHandler) Update(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TaxProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.profiles.Update(c.UserContext(), claims.UserID(), c.Params("id"), taxProfileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tax_profile": dto.NewTaxProfileResponse(profile)})
}

// Submit handles POST /api/tax-profiles/:id/submit.
func (h *TaxProfilesHandler) Submit(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.profiles.Submit(c.UserContext(), claims.UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"msg":         "Tax profile submitted",
		"tax_profile": dto.NewTaxProfileResponse(profile),
	})
}

func taxProfileInput(req dto.TaxProfileRequest) service.TaxProfileInput {
	return service.TaxProfileInput{
		AssessmentYear: req.AssessmentYear,
		PAN:            req.PAN,
		FullName:       req.FullName,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		Income:         req.Income,
		Deductions:     req.Deductions,
	}
}
