package service

import (
	"context"
	"errors"
	"time"

	"hms/internal/auth"
	autherrors "hms/internal/auth/errors"
	"hms/internal/auth/repository"
	"hms/internal/auth/validator"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/middleware"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
	"hms/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetTokenTTL = time.Hour

	forgotPasswordMessage = "If email exists, reset link will be sent"
)

type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// AuthService also implements middleware.Authenticator.
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	ForgotPassword(ctx context.Context, req *model.ForgotPasswordRequest) (string, error)
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error
	Authenticate(ctx context.Context, token string) (*middleware.Principal, error)
}

type authService struct {
	users     repository.UserRepository
	resets    repository.PasswordResetRepository
	tokens    *auth.TokenIssuer
	mailer    ResetMailer
	validator *validator.UserValidator
	cfg       *config.Config

	hashCost int
	now      func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	tokens *auth.TokenIssuer,
	mailer ResetMailer,
	validator *validator.UserValidator,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:     users,
		resets:    resets,
		tokens:    tokens,
		mailer:    mailer,
		validator: validator,
		cfg:       cfg,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			s.cfg.Log.Warn("Login failed, unknown email", "email", req.Email)
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		s.cfg.Log.Error("Failed to load user for login", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.cfg.Log.Warn("Login failed, wrong password", "user_id", user.ID)
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return &model.LoginResponse{Token: token, User: *user}, nil
}

func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Name = sanitizer.NormalizeName(req.Name)
	if req.Role == "" {
		req.Role = model.RoleStaff
	}
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("User registration validation failed", "email", req.Email, "error", err)
		return nil, validationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to register user", err)
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = map[string]bool{}
	}
	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		Permissions:  permissions,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.cfg.Log.Error("Failed to create user", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

// ForgotPassword answers the same way whether or not the email is known.
func (s *authService) ForgotPassword(ctx context.Context, req *model.ForgotPasswordRequest) (string, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return "", validationError(err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, autherrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to look up user for password reset", "email", req.Email, "error", err)
		}
		return forgotPasswordMessage, nil
	}

	reset := &model.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: s.now().Add(resetTokenTTL).UTC(),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		s.cfg.Log.Error("Failed to store password reset", "user_id", user.ID, "error", err)
		return forgotPasswordMessage, nil
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, reset.Token); err != nil {
		s.cfg.Log.Error("Failed to send password reset email", "user_id", user.ID, "error", err)
	}
	return forgotPasswordMessage, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	req.Token = sanitizer.TrimAndNormalize(req.Token)
	if err := s.validator.Validate(req); err != nil {
		return validationError(err)
	}

	reset, err := s.resets.Find(ctx, req.Token)
	if err != nil {
		if errors.Is(err, autherrors.ErrResetNotFound) {
			return apperrors.InvalidInput("Invalid or expired token")
		}
		return apperrors.Internal("Failed to reset password", err)
	}
	if s.now().After(reset.ExpiresAt) {
		return apperrors.InvalidInput("Token expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return apperrors.Internal("Failed to reset password", err)
	}
	if err := s.users.UpdatePassword(ctx, reset.UserID, string(hash)); err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return apperrors.InvalidInput("Invalid or expired token")
		}
		s.cfg.Log.Error("Failed to update password", "user_id", reset.UserID, "error", err)
		return apperrors.Internal("Failed to reset password", err)
	}

	if err := s.resets.Delete(ctx, req.Token); err != nil {
		s.cfg.Log.Error("Failed to delete used password reset", "user_id", reset.UserID, "error", err)
	}

	s.cfg.Log.Info("Password reset", "user_id", reset.UserID)
	return nil
}

// Authenticate verifies token and reloads the user so role and permission
// changes apply without a new login.
func (s *authService) Authenticate(ctx context.Context, token string) (*middleware.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		s.cfg.Log.Error("Failed to load user for token", "user_id", claims.UserID, "error", err)
		return nil, apperrors.Internal("Failed to authenticate", err)
	}

	return &middleware.Principal{
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: user.Permissions,
	}, nil
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("User validation failed", verrs.Details())
	}
	return apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
}
