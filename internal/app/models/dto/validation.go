package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding error into an error detail listing each
// failed field. Errors that are not validator errors (malformed JSON, wrong types)
// produce a generic detail.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	fields := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{
			Field:   jsonFieldName(fe),
			Message: FormatFieldError(fe),
		})
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, fields[0].Message).WithDetails(fields)
	if len(fields) == 1 {
		detail.WithField(fields[0].Field)
	}
	return detail
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	field := jsonFieldName(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "url":
		return field + " must be a valid URL"
	case "clock":
		return field + " must be in HH:MM format"
	case "calendardate":
		return field + " must be a valid date (YYYY-MM-DD)"
	default:
		return field + " validation failed: " + e.Tag()
	}
}

// jsonFieldName lower-cases the first letter of the reported field name, so Go names
// ("BatchNumber") read like JSON names when no tag name function is registered
func jsonFieldName(e validator.FieldError) string {
	name := e.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
