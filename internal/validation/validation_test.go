package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:    "trader@example.com",
		Password: "Str0ngPass",
		Name:     "Trader",
	}
}

func TestValidate_RegisterRequest_Success(t *testing.T) {
	assert.NoError(t, Validate(validRegisterRequest()))
}

func TestValidate_RegisterRequest_MissingFields(t *testing.T) {
	err := Validate(models.RegisterRequest{})
	require.Error(t, err)

	var valErr *Error
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Email"])
	assert.Equal(t, "is required", fields["Password"])
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_RegisterRequest_BadEmail(t *testing.T) {
	req := validRegisterRequest()
	req.Email = "not-an-email"

	err := Validate(req)
	require.Error(t, err)

	var valErr *Error
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_PasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{name: "all classes present", password: "Str0ngPass", wantOK: true},
		{name: "no uppercase", password: "str0ngpass", wantOK: false},
		{name: "no lowercase", password: "STR0NGPASS", wantOK: false},
		{name: "no digit", password: "StrongPass", wantOK: false},
		{name: "too short", password: "S0g", wantOK: false},
		{name: "too long", password: "S0" + strings.Repeat("a", 99), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			req.Password = tt.password

			err := Validate(req)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/auth/register",
		strings.NewReader(`{"email":"trader@example.com","password":"Str0ngPass","name":"Trader"}`))

	var req models.RegisterRequest
	require.NoError(t, DecodeAndValidate(r, &req))
	assert.Equal(t, "trader@example.com", req.Email)
}

func TestDecodeAndValidate_MalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{not json`))

	var req models.RegisterRequest
	assert.Error(t, DecodeAndValidate(r, &req))
}

func TestDecodeAndValidate_FailedRule(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"trader@example.com"}`))

	var req models.LoginRequest
	err := DecodeAndValidate(r, &req)

	var valErr *Error
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "Password")
}
