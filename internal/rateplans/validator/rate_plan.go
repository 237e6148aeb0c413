package validator

import (
	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type RatePlanValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRatePlanValidator(log *logger.Logger) *RatePlanValidator {
	return &RatePlanValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *RatePlanValidator) Validate(plan *model.RatePlan) error {
	if err := validation.Struct(v.validate, plan); err != nil {
		return err
	}
	return v.validateBusinessRules(plan)
}

func (v *RatePlanValidator) validateBusinessRules(plan *model.RatePlan) error {
	// A discount past -100% would price the stay below zero.
	if plan.ModifierType == model.ModifierPercent && plan.ModifierValue < -100 {
		return validation.ValidationErrors{{
			Field:   "ModifierValue",
			Message: "ModifierValue cannot be below -100 for a percent modifier",
		}}
	}
	return nil
}
