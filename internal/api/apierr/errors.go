package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fwhittle/typerace-go/internal/model"
)

// ErrorResponse is the wire shape for failures: success is always
// false and error carries a human-readable message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// httpError combines an HTTP status code with a response message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, "Room not found."}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "Player not found."}
	case errors.Is(err, model.ErrTestNotRunning):
		return &httpError{http.StatusNotFound, "Test not running."}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, "Not the host!"}
	case errors.Is(err, model.ErrTestRunning):
		return &httpError{http.StatusForbidden, "Test already running!"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error."}
	}
}

// NewInvalidRequestError creates a 400 validation error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewInternalError creates a 500 internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error."}
}
