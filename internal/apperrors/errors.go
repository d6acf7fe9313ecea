package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors for the failure taxonomy. Services wrap these with
// context via fmt.Errorf("...: %w", ...) and handlers map them to HTTP
// status codes with StatusCode.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrDuplicateEmail  = errors.New("email already registered")

	// OwnershipMismatch is an authorization failure: the resource exists
	// but belongs to a different user.
	ErrOwnershipMismatch = errors.New("resource belongs to a different user")

	ErrInvalidTransition = errors.New("invalid status transition")

	// Transient store/network failure; reads may be retried with backoff.
	ErrUnavailable = errors.New("service temporarily unavailable")

	// Booking creation failed after a partial write was rolled back. The
	// caller must not assume the booking exists.
	ErrBookingCreationFailed = errors.New("booking could not be created")
)

// Validation failures specific to booking creation.
var (
	ErrInvalidServiceSelection = wrap("invalid service selection", ErrValidation)
	ErrInvalidDate             = wrap("appointment date must be today or later", ErrValidation)
)

func wrap(msg string, sentinel error) error {
	return &wrapped{msg: msg, err: sentinel}
}

type wrapped struct {
	msg string
	err error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.err }

// StatusCode maps an error to the HTTP status code it should surface as.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOwnershipMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrBookingCreationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
