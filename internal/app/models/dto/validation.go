package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding error into an ErrorDetail. Field
// level validator errors get a readable message naming the first failing
// field; anything else (malformed JSON and so on) keeps the raw error text.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		errorDetail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		errorDetail = errorDetail.WithField(first.Field())
		errorDetail = errorDetail.WithDetails(formatFieldError(first))
		return errorDetail
	}

	errorDetail := NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format")
	errorDetail = errorDetail.WithDetails(err.Error())
	return errorDetail
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
