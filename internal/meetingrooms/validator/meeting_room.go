package validator

import (
	"errors"
	"fmt"

	"roomsvc/pkg/model"

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
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

// MeetingRoomValidator enforces payload shape only: required name and length
// bounds. Uniqueness and existence are service-level guards.
type MeetingRoomValidator struct {
	validate *validator.Validate
}

func NewMeetingRoomValidator() *MeetingRoomValidator {
	return &MeetingRoomValidator{
		validate: validator.New(),
	}
}

func (v *MeetingRoomValidator) ValidateCreate(payload *model.MeetingRoomCreate) error {
	return v.run(payload)
}

func (v *MeetingRoomValidator) ValidateUpdate(payload *model.MeetingRoomUpdate) error {
	return v.run(payload)
}

func (v *MeetingRoomValidator) run(payload any) error {
	if err := v.validate.Struct(payload); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message(err),
		})
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
