package validator

import (
	"hms/pkg/dates"
	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type PromoCodeValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPromoCodeValidator(log *logger.Logger) *PromoCodeValidator {
	return &PromoCodeValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *PromoCodeValidator) Validate(promo *model.PromoCode) error {
	if err := validation.Struct(v.validate, promo); err != nil {
		return err
	}
	return v.validateBusinessRules(promo)
}

func (v *PromoCodeValidator) validateBusinessRules(promo *model.PromoCode) error {
	var errs validation.ValidationErrors

	if promo.DiscountType == model.DiscountPercent && promo.DiscountValue > 100 {
		errs = append(errs, validation.ValidationError{
			Field:   "DiscountValue",
			Message: "DiscountValue cannot exceed 100 for a percent discount",
		})
	}

	from, fromErr := dates.ParseTimestamp(promo.ValidFrom)
	until, untilErr := dates.ParseTimestamp(promo.ValidUntil)
	if fromErr == nil && untilErr == nil && until.Before(from) {
		errs = append(errs, validation.ValidationError{
			Field:   "ValidUntil",
			Message: "ValidUntil must not be before ValidFrom",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
