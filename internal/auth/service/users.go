package service

import (
	"context"
	"errors"

	autherrors "hms/internal/auth/errors"
	"hms/internal/auth/repository"
	"hms/internal/auth/validator"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/middleware"
	"hms/pkg/model"
	"hms/pkg/sanitizer"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, actor *middleware.Principal, id string, updates *model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, actor *middleware.Principal, id string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
	hashCost  int
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		hashCost:  bcrypt.DefaultCost,
	}
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, actor *middleware.Principal, id string, updates *model.UserUpdate) (*model.User, error) {
	if updates.Name != nil {
		name := sanitizer.NormalizeName(*updates.Name)
		updates.Name = &name
	}
	if err := s.validator.ValidateUpdate(updates, actor.IsSuperAdmin()); err != nil {
		s.cfg.Log.Warn("User update validation failed", "user_id", id, "error", err)
		return nil, validationError(err)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		return nil, apperrors.Internal("Failed to update user", err)
	}

	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.Role != nil {
		user.Role = *updates.Role
	}
	if updates.Permissions != nil {
		user.Permissions = *updates.Permissions
	}
	user.PasswordHash = ""
	if updates.Password != nil && *updates.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*updates.Password), s.hashCost)
		if err != nil {
			return nil, apperrors.Internal("Failed to update user", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		s.cfg.Log.Error("Failed to update user", "user_id", id, "error", err)
		return nil, apperrors.Internal("Failed to update user", err)
	}

	s.cfg.Log.Info("User updated", "user_id", id, "by", actor.UserID, "password_changed", user.PasswordHash != "")
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *middleware.Principal, id string) error {
	if actor.UserID == id {
		return apperrors.InvalidInput("Cannot delete yourself")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		s.cfg.Log.Error("Failed to delete user", "user_id", id, "error", err)
		return apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted", "user_id", id, "by", actor.UserID)
	return nil
}
