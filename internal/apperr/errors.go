// Package apperr defines the error taxonomy shared by services and handlers.
// Services wrap these sentinels with context via fmt.Errorf("...: %w", ...);
// handlers translate them to HTTP status codes with Status.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing input fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced wish, user or list that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks ownership violations, self-funding, self-copy,
	// over-funding and locked-wish mutations.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateCopy marks an attempt to copy a wish the user already
	// holds an identical copy of.
	ErrDuplicateCopy = errors.New("wish already copied")

	// ErrConflict marks a unique-constraint violation surfaced from
	// storage, e.g. a duplicate username or email.
	ErrConflict = errors.New("already exists")
)

// Status maps an error to the HTTP status code it should be reported with.
// Unrecognized errors are treated as internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicateCopy):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
