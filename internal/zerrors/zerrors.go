package zerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error names surfaced to callers. They are part of the API contract and are
// rendered verbatim in HTTP error bodies.
const (
	NameNotFound        = "NotFoundError"
	NamePendentRental   = "PendentRentalError"
	NameMovieInRental   = "MovieInRentalError"
	NameInsufficientAge = "InsufficientAgeError"
	NameValidation      = "ValidationError"
	NameInternal        = "InternalError"
)

// Error is a named failure carrying a human readable message
type Error struct {
	Name    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Name, so callers can compare against
// the sentinel values below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Name == e.Name
}

// Sentinels for errors.Is comparisons
var (
	ErrNotFound        = &Error{Name: NameNotFound}
	ErrPendentRental   = &Error{Name: NamePendentRental}
	ErrMovieInRental   = &Error{Name: NameMovieInRental}
	ErrInsufficientAge = &Error{Name: NameInsufficientAge}
	ErrValidation      = &Error{Name: NameValidation}
	ErrInternal        = &Error{Name: NameInternal}
)

// NewNotFoundError creates an error for a missing entity
func NewNotFoundError(message string) *Error {
	return &Error{Name: NameNotFound, Message: message}
}

// NewPendentRentalError creates an error for a user that still holds a rental
func NewPendentRentalError(message string) *Error {
	return &Error{Name: NamePendentRental, Message: message}
}

// NewMovieInRentalError creates an error for a movie that belongs to another rental
func NewMovieInRentalError(message string) *Error {
	return &Error{Name: NameMovieInRental, Message: message}
}

// NewInsufficientAgeError creates an error for an age-restricted movie
func NewInsufficientAgeError(message string) *Error {
	return &Error{Name: NameInsufficientAge, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *Error {
	return &Error{Name: NameValidation, Message: message, Cause: cause}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *Error {
	return &Error{Name: NameInternal, Message: message, Cause: cause}
}

// NameOf returns the error name, or NameInternal for errors outside the taxonomy
func NameOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Name
	}
	return NameInternal
}

// HTTPStatus maps an error to the status code used by the API layer
func HTTPStatus(err error) int {
	switch NameOf(err) {
	case NameNotFound:
		return http.StatusNotFound
	case NamePendentRental, NameMovieInRental:
		return http.StatusConflict
	case NameInsufficientAge:
		return http.StatusForbidden
	case NameValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
