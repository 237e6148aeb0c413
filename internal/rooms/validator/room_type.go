package validator

import (
	"fmt"

	"hms/pkg/logger"
	"hms/pkg/model"
	"hms/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type RoomTypeValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRoomTypeValidator(log *logger.Logger) *RoomTypeValidator {
	return &RoomTypeValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *RoomTypeValidator) Validate(room *model.RoomType) error {
	if err := validation.Struct(v.validate, room); err != nil {
		return err
	}
	return v.validateBusinessRules(room)
}

func (v *RoomTypeValidator) validateBusinessRules(room *model.RoomType) error {
	if len(room.ImageAlts) > len(room.Images) {
		return validation.ValidationErrors{{
			Field:   "ImageAlts",
			Message: fmt.Sprintf("ImageAlts has %d entries but there are only %d images", len(room.ImageAlts), len(room.Images)),
		}}
	}
	return nil
}
