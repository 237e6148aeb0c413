package validator

import (
	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type InventoryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewInventoryValidator(log *logger.Logger) *InventoryValidator {
	return &InventoryValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *InventoryValidator) ValidateDay(day *model.InventoryDay) error {
	return validation.Struct(v.validate, day)
}

// ValidateBulk checks field shapes only. Range ordering is checked by the
// service once the dates are parsed.
func (v *InventoryValidator) ValidateBulk(req *model.BulkInventoryUpdate) error {
	return validation.Struct(v.validate, req)
}
