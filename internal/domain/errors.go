package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist or is inactive.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. no destinations, min weight above max weight).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrBadRequest is returned when the request is well-formed but cannot be
// served with the data on file (e.g. a vendor without a contact email).
// Handlers should map this to HTTP 400.
var ErrBadRequest = errors.New("bad request")

// ErrConflict is returned when a write collides with existing state, such as
// a quote submitted with an id that is already taken.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnavailable is returned when a downstream service cannot be reached.
// Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("service unavailable")

// NotFoundError names the entity that could not be resolved.
// errors.Is(err, ErrNotFound) reports true for it.
type NotFoundError struct {
	Entity string
	Key    string
}

// NotFound builds a NotFoundError for entity identified by key.
// key may be empty when the lookup had no natural identifier.
func NotFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// Is lets errors.Is match a NotFoundError against ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Detail returns the text a caller attached to sentinel, e.g. "quantity must
// be positive" for fmt.Errorf("%w: quantity must be positive", ErrValidation),
// however deeply that error is wrapped. ok is false when err does not wrap
// sentinel directly with a detail.
func Detail(err, sentinel error) (detail string, ok bool) {
	for err != nil {
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			if u.Unwrap() == sentinel {
				return cutSentinel(err, sentinel)
			}
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if inner == sentinel {
					return cutSentinel(err, sentinel)
				}
				if d, ok := Detail(inner, sentinel); ok {
					return d, true
				}
			}
			return "", false
		default:
			return "", false
		}
	}
	return "", false
}

func cutSentinel(err, sentinel error) (string, bool) {
	if detail, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok {
		return detail, true
	}
	return "", false
}
