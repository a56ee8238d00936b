package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/domain"
	"github.com/spec-kit/taxease-service/internal/repository"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
	"github.com/spec-kit/taxease-service/pkg/validate"
)

// ProfileUpdate carries the optional fields of a profile update.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService handles profile reads and updates.
type UserService struct {
	users      repository.UserRepository
	plans      repository.PlanRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, plans repository.PlanRepository, bcryptCost int) *UserService {
	return &UserService{users: users, plans: plans, bcryptCost: bcryptCost}
}

// GetProfile loads the user and, when one is selected, their plan.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, *domain.Plan, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, apperrors.NewInternalError(err)
	}

	var plan *domain.Plan
	if user.PlanID != nil {
		plan, err = s.plans.GetByID(ctx, *user.PlanID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInternalError(err)
		}
	}
	return user, plan, nil
}

// UpdateProfile applies a partial update to the user record.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		user.Name = *update.Name
	}
	if update.Email != nil {
		email := validate.NormalizeEmail(*update.Email)
		if !validate.Email(email) {
			return nil, apperrors.NewValidationError("invalid email", nil)
		}
		user.Email = email
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, apperrors.NewValidationError("password cannot be empty", nil)
		}
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err, "users_email_key") {
			return nil, apperrors.NewDuplicateUser()
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// SelectPlan assigns an active plan to the user.
func (s *UserService) SelectPlan(ctx context.Context, userID, planID string) (*domain.User, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("plan", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !plan.IsActive {
		return nil, apperrors.NewValidationError("plan is not active", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	user.PlanID = &plan.ID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}
