package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes surfaced by the API.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeNotFound           = "not_found"
	CodeValidation         = "validation_error"
	CodeInvalidRequest     = "invalid_request"
	CodeServerError        = "server_error"
)

// APIError is a status-coded error response. It implements the error
// interface and can be used both by the server (to write HTTP responses)
// and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WithDescription returns a copy of the error with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	clone := *e
	clone.Description = desc
	return &clone
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidCredentials covers bad logins and missing, invalid, or
	// expired tokens. The description never reveals whether the username
	// exists.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        CodeInvalidCredentials,
		Description: "incorrect username or password",
	}

	// ErrInvalidToken is the bearer-token variant of ErrInvalidCredentials.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        CodeInvalidCredentials,
		Description: "could not validate credentials",
	}

	// ErrNotFound covers resources that are absent or not owned by the
	// caller. The two cases are deliberately indistinguishable.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        CodeNotFound,
		Description: "resource not found",
	}

	// ErrValidation is returned for malformed input.
	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        CodeValidation,
		Description: "invalid input",
	}

	// ErrInvalidRequest is returned when the request body or form cannot be
	// parsed at all.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        CodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrServerError is a generic 500 that leaks no internals.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        CodeServerError,
		Description: "internal server error",
	}
)
