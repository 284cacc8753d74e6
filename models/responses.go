package models

// SuccessResponse is the uniform JSON envelope for successful API calls:
// {"success":true, "message":..., "data":...}. Message and Data are omitted
// when empty so minimal acknowledgements stay minimal.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the uniform JSON envelope for failed API calls:
// {"success":false, "error":{...}}.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody describes a classified failure in a wire-safe form. Code is a
// stable machine-readable string; Details carries optional field-level
// information (e.g. validation messages). Internal holds the raw error text
// and is populated only in development mode.
type ErrorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Details  any    `json:"details,omitempty"`
	Internal string `json:"internal,omitempty"`
}
