package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"bad request", BadRequest(CodeMissingToken, "missing token"), http.StatusBadRequest},
		{"unauthorized", Unauthorized(CodeInvalidCredentials, "invalid email or password"), http.StatusUnauthorized},
		{"forbidden", Forbidden(CodeEmailNotVerified, "email not verified"), http.StatusForbidden},
		{"not found", NotFound(CodeUserNotFound, "user not found"), http.StatusNotFound},
		{"conflict", Conflict(CodeEmailInUse, "email already in use"), http.StatusConflict},
		{"internal", Internal("something went wrong"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestWithCause_PreservesWireFieldsAndUnwraps(t *testing.T) {
	cause := errors.New("pq: connection refused")
	base := Conflict(CodeEmailInUse, "email already in use")

	wrapped := base.WithCause(cause)

	require.NotSame(t, base, wrapped)
	assert.Nil(t, base.Err, "original must stay untouched")
	assert.Equal(t, base.Status, wrapped.Status)
	assert.Equal(t, base.Code, wrapped.Code)
	assert.Equal(t, base.Message, wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWithDetails(t *testing.T) {
	details := map[string]string{"password": "must be at least 8 characters"}
	err := BadRequest(CodeValidationError, "validation failed").WithDetails(details)

	assert.Equal(t, details, err.Details)
}

func TestError_MessageFormat(t *testing.T) {
	plain := Unauthorized(CodeNoRefreshToken, "access denied, no refresh token")
	assert.Equal(t, "NO_REFRESH_TOKEN: access denied, no refresh token", plain.Error())

	wrapped := plain.WithCause(errors.New("cookie absent"))
	assert.Contains(t, wrapped.Error(), "cookie absent")
}

func TestErrorsAs_MatchesThroughWrapping(t *testing.T) {
	var appErr *Error
	err := error(Forbidden(CodeInvalidRefreshToken, "invalid or expired refresh token"))

	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeInvalidRefreshToken, appErr.Code)
}
