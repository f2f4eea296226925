package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/seabattle/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
	// RequestID is set on internal errors so they can be found in the logs
	RequestID string `json:"request_id,omitempty"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidCoordinate   = "INVALID_COORDINATE"
	CodeUnknownStrategy     = "UNKNOWN_STRATEGY"
	CodeUnknownPolicy       = "UNKNOWN_POLICY"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeShotPending         = "SHOT_PENDING"
	CodeNoShotPending       = "NO_SHOT_PENDING"
	CodeInvalidShotResult   = "INVALID_SHOT_RESULT"
	CodeAlreadyFiredAt      = "ALREADY_FIRED_AT"
	CodeGameOver            = "GAME_OVER"
	CodeNoCellsRemaining    = "NO_CELLS_REMAINING"
	CodePlacementExhausted  = "PLACEMENT_EXHAUSTED"
	CodeCorruptSessionState = "CORRUPT_SESSION_STATE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status    int
	apiError  APIError
	requestID string
}

func newHTTPError(status int, code, message string) *httpError {
	return &httpError{status: status, apiError: APIError{Code: code, Message: message}}
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError, RequestID: he.requestID})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return newHTTPError(http.StatusNotFound, CodeSessionNotFound, "Session not found")
	case errors.Is(err, model.ErrInvalidCoordinate):
		return newHTTPError(http.StatusBadRequest, CodeInvalidCoordinate, err.Error())
	case errors.Is(err, model.ErrUnknownStrategy):
		return newHTTPError(http.StatusBadRequest, CodeUnknownStrategy, err.Error())
	case errors.Is(err, model.ErrUnknownPolicy):
		return newHTTPError(http.StatusBadRequest, CodeUnknownPolicy, err.Error())
	case errors.Is(err, model.ErrShotPending):
		return newHTTPError(http.StatusConflict, CodeShotPending, "Previous shot is still awaiting a result")
	case errors.Is(err, model.ErrNoShotPending):
		return newHTTPError(http.StatusConflict, CodeNoShotPending, "No shot is awaiting a result")
	case errors.Is(err, model.ErrInvalidShotResult):
		return newHTTPError(http.StatusUnprocessableEntity, CodeInvalidShotResult, err.Error())
	case errors.Is(err, model.ErrAlreadyFiredAt):
		return newHTTPError(http.StatusConflict, CodeAlreadyFiredAt, "Cell has already been fired at")
	case errors.Is(err, model.ErrGameOver):
		return newHTTPError(http.StatusConflict, CodeGameOver, "Every ship has already been sunk")
	case errors.Is(err, model.ErrNoCellsRemaining):
		return newHTTPError(http.StatusConflict, CodeNoCellsRemaining, "Every cell has already been tried")
	case errors.Is(err, model.ErrPlacementExhausted):
		return newHTTPError(http.StatusServiceUnavailable, CodePlacementExhausted, "No legal fleet placement found")
	case errors.Is(err, model.ErrInvalidSnapshot), errors.Is(err, model.ErrInvalidLayout):
		return newHTTPError(http.StatusInternalServerError, CodeCorruptSessionState, "Stored session state is corrupt")

	default:
		return newHTTPError(http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, CodeInvalidRequest, message)
}

// NewInternalError creates an internal server error tagged with the request ID
func NewInternalError(requestID string) error {
	he := newHTTPError(http.StatusInternalServerError, CodeInternalError, "Internal server error")
	he.requestID = requestID
	return he
}
