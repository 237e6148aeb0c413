package validator

import (
	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const MaxSpecialRequests = 1000

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	return &ReservationValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *ReservationValidator) Validate(req *model.ReservationRequest) error {
	return validation.Struct(v.validate, req)
}

func (v *ReservationValidator) ValidateStatus(status string) error {
	if !model.ValidReservationStatus(status) {
		return validation.ValidationErrors{{
			Field:   "Status",
			Message: "Status must be one of: pending, confirmed, checked_in, checked_out, cancelled",
		}}
	}
	return nil
}
