// Package validation runs go-playground/validator over the request DTOs at
// the HTTP boundary, so the service layer only ever sees well-formed input.
// On top of the standard tags it registers the "password" complexity rule
// used at registration and reset time.
package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration on a fresh instance cannot fail.
	_ = v.RegisterValidation("password", passwordRule)
	return v
}

// passwordRule requires at least one lowercase letter, one uppercase letter
// and one digit. Length bounds come from the min/max tags next to it.
func passwordRule(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// Validate checks a struct against its validate tags.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return &Error{Errors: validationErrors}
		}
		return err
	}
	return nil
}

// Error wraps validator.ValidationErrors with client-friendly messages. The
// HTTP error classifier matches on this type and renders the field map as
// the VALIDATION_ERROR details.
type Error struct {
	Errors validator.ValidationErrors
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", err.Field(), msgForTag(err)))
	}
	return strings.Join(msgs, "; ")
}

// Fields returns a map of field names to error messages.
func (e *Error) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, err := range e.Errors {
		fields[err.Field()] = msgForTag(err)
	}
	return fields
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "password":
		return "must contain at least one lowercase letter, one uppercase letter, and one number"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// DecodeAndValidate reads JSON from the request body into dst and validates
// it. A malformed body and a failed rule both surface as client errors.
func DecodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.BadRequest(apperrors.CodeValidationError, "Invalid request body").WithCause(err)
	}
	return Validate(dst)
}
