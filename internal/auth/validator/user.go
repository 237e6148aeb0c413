package validator

import (
	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

// Validate checks any of the auth request bodies.
func (v *UserValidator) Validate(req any) error {
	return validation.Struct(v.validate, req)
}

// ValidateUpdate also stops staff from being granted superadmin through an
// update by anyone but a superadmin.
func (v *UserValidator) ValidateUpdate(updates *model.UserUpdate, actorIsSuperAdmin bool) error {
	if err := validation.Struct(v.validate, updates); err != nil {
		return err
	}
	if updates.Role != nil && *updates.Role == model.RoleSuperAdmin && !actorIsSuperAdmin {
		return validation.ValidationErrors{{
			Field:   "Role",
			Message: "Only a superadmin can grant the superadmin role",
		}}
	}
	return nil
}
