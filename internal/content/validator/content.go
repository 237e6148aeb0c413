package validator

import (
	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ContentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewContentValidator(log *logger.Logger) *ContentValidator {
	return &ContentValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *ContentValidator) Validate(content *model.SiteContent) error {
	return validation.Struct(v.validate, content)
}

func (v *ContentValidator) ValidateUpdate(update *model.SiteContentUpdate) error {
	return validation.Struct(v.validate, update)
}
