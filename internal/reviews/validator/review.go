package validator

import (
	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ReviewValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReviewValidator(log *logger.Logger) *ReviewValidator {
	return &ReviewValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *ReviewValidator) Validate(review *model.Review) error {
	return validation.Struct(v.validate, review)
}

func (v *ReviewValidator) ValidateVisibility(req *model.ReviewVisibility) error {
	return validation.Struct(v.validate, req)
}
