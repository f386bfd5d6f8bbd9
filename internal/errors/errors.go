package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNameTaken is returned when the registration name is already in use.
	ErrNameTaken = errors.New("name already registered")
	// ErrInvalidCredentials is returned for any login failure. It deliberately
	// does not say whether the name or the password was wrong.
	ErrInvalidCredentials = errors.New("incorrect name or password")
	// ErrInvalidToken is returned when a token fails signature or expiry
	// checks, or its subject no longer exists.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrDuplicateTitle is returned when the owner already has a task with
	// the same title.
	ErrDuplicateTitle = errors.New("task with this title already exists for this user")
	// ErrTaskNotFound is returned for missing or foreign-owned tasks.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNoSearchResults is returned when a search matches nothing.
	ErrNoSearchResults = errors.New("no tasks found matching your search")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Credential failures all
// collapse into a single 401 so callers cannot probe which factor failed.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrNameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NAME_TAKEN")
	case errors.Is(err, ErrDuplicateTitle):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_TITLE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrNoSearchResults):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_SEARCH_RESULTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
