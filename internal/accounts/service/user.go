package service

import (
	"context"
	"errors"

	accountserrors "airlock/internal/accounts/errors"
	"airlock/internal/accounts/repository"
	"airlock/internal/accounts/validator"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
	"airlock/pkg/sanitizer"
)

const defaultRoleListLimit = 50

type UserService interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	ByRole(ctx context.Context, role model.UserRole) ([]*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, user *model.User) error {
	user.Name = sanitizer.SanitizeTitle(user.Name)
	user.ProfileText = sanitizer.SanitizeText(user.ProfileText)
	user.ProfilePicture = sanitizer.SanitizeURL(user.ProfilePicture)

	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		s.cfg.Log.Error("Failed to create user", "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created", "id", user.ID, "role", user.Role)
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, accountserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("User", id)
		case errors.Is(err, accountserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid user ID format")
		default:
			s.cfg.Log.Error("Failed to retrieve user", "id", id, "error", err)
			return nil, apperrors.Internal("Failed to retrieve user", err)
		}
	}

	return user, nil
}

func (s *userService) ByRole(ctx context.Context, role model.UserRole) ([]*model.User, error) {
	if role != model.RoleHost && role != model.RoleGuest {
		return nil, apperrors.InvalidInput("invalid role: " + string(role))
	}

	users, err := s.repo.FindByRole(ctx, role, defaultRoleListLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to list users by role", "role", role, "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}

	return users, nil
}
