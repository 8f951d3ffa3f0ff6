package domain

import (
	"errors"
	"fmt"
)

// Store invariant violations.
var (
	// ErrNotFound indicates no note has the requested id.
	ErrNotFound = errors.New("note not found")

	// ErrDuplicateID indicates a note with the same id is already stored.
	ErrDuplicateID = errors.New("duplicate note id")
)

// ConfigurationError reports a caller or setup mistake such as a missing key.
type ConfigurationError struct {
	Provider Provider
	Message  string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// EmptyResponseError reports a provider call that succeeded without a usable label.
type EmptyResponseError struct {
	Provider Provider
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("no category received from %s", e.Provider)
}

// TransportError reports a provider call that failed outright.
type TransportError struct {
	Provider   Provider
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsConfiguration checks if err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsEmptyResponse checks if err is an EmptyResponseError.
func IsEmptyResponse(err error) bool {
	var target *EmptyResponseError
	return errors.As(err, &target)
}

// IsTransport checks if err is a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}
