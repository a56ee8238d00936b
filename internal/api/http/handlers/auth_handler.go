package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/api/dto"
	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/service"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

// AuthHandler exposes registration, login and the auth probe routes.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RegisterResponse{
		Msg:   "User registered successfully",
		Token: token,
		User: dto.UserSummary{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Msg:   "Login successful",
		Token: token,
	})
}

// Protected handles GET /api/auth/protected; the auth middleware runs first.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{
		"msg": fmt.Sprintf("Hello, %s! You are authorized to access this content.", claims.Name),
	})
}

// Public handles GET /api/auth/public.
func (h *AuthHandler) Public(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"msg": "This is a public route"})
}
