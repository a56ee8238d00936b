package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/config"
	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/events"
	"github.com/spec-kit/taxease-service/internal/repository"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
	"github.com/spec-kit/taxease-service/pkg/validate"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RegisterTokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new user account and issues a token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("name, email and password are required", nil)
	}

	email = validate.NormalizeEmail(email)
	if !validate.Email(email) {
		return nil, "", apperrors.NewValidationError("invalid email", nil)
	}

	// Best-effort pre-check; the unique index on users.email catches races.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewDuplicateUser()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err, "users_email_key") {
			return nil, "", apperrors.NewDuplicateUser()
		}
		return nil, "", apperrors.NewInternalError(err)
	}

	token, _, err := s.tokenMgr.GenerateRegisterToken(user)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID,
			events.UserRegisteredPayload{Email: user.Email, Role: user.Role}))
	}

	return user, token, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUserNotFound()
		}
		return nil, "", apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewInvalidCredentials()
	}

	token, _, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
