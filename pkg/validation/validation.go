package validation

import (
	"errors"
	"fmt"
	"strings"

	"hms/pkg/dates"
	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details renders the errors as a field to message map for error responses.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

var customValidators = map[string]validator.Func{
	"ymd":                validateYMD,
	"timestamp":          validateTimestamp,
	"modifier_type":      validateModifierType,
	"discount_type":      validateDiscountType,
	"reservation_status": validateReservationStatus,
	"user_role":          validateUserRole,
	"permission_key":     validatePermissionKey,
}

// New returns a validator with the hotel's custom tags registered.
func New(log *logger.Logger) *validator.Validate {
	v := validator.New()

	for tag, fn := range customValidators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register validator", "tag", tag, "error", err)
		}
	}

	return v
}

// Struct validates s and translates any failures into ValidationErrors.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return Translate(validationErrs)
		}
		return err
	}
	return nil
}

func Translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "alphanum":
			message = fmt.Sprintf("%s must contain only letters and digits", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "ymd":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "timestamp":
			message = fmt.Sprintf("%s must be an RFC3339 timestamp", err.Field())
		case "modifier_type":
			message = fmt.Sprintf("%s must be one of: %s, %s, %s", err.Field(), model.ModifierPercent, model.ModifierAbsoluteAdd, model.ModifierAbsoluteTotal)
		case "discount_type":
			message = fmt.Sprintf("%s must be one of: %s, %s", err.Field(), model.DiscountPercent, model.DiscountFixed)
		case "reservation_status":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), strings.Join(model.ReservationStatuses, ", "))
		case "user_role":
			message = fmt.Sprintf("%s must be one of: %s, %s, %s", err.Field(), model.RoleSuperAdmin, model.RoleAdmin, model.RoleStaff)
		case "permission_key":
			message = fmt.Sprintf("%s contains an unknown permission", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func validateYMD(fl validator.FieldLevel) bool {
	return dates.Valid(fl.Field().String())
}

func validateTimestamp(fl validator.FieldLevel) bool {
	_, err := dates.ParseTimestamp(fl.Field().String())
	return err == nil
}

func validateModifierType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.ModifierPercent, model.ModifierAbsoluteAdd, model.ModifierAbsoluteTotal:
		return true
	}
	return false
}

func validateDiscountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.DiscountPercent, model.DiscountFixed:
		return true
	}
	return false
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	return model.ValidReservationStatus(fl.Field().String())
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.RoleSuperAdmin, model.RoleAdmin, model.RoleStaff:
		return true
	}
	return false
}

func validatePermissionKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	for _, p := range model.Permissions {
		if p == key {
			return true
		}
	}
	return false
}
