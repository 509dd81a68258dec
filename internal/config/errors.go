package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceLoad indicates a configuration source that could not be read
	// or parsed.
	ErrSourceLoad = errors.New("error loading config source")
	// ErrMergeValidation indicates that the merged configuration failed one
	// or more validation checks.
	ErrMergeValidation = errors.New("config validation failed")
	// ErrTypeMismatch indicates a stored value that cannot be converted to
	// the requested type.
	ErrTypeMismatch = errors.New("config value type mismatch")
	// ErrKeyMissing indicates a key that no layer defines.
	ErrKeyMissing = errors.New("config key missing")
	// ErrOddArguments indicates a key/value pair list of odd length.
	ErrOddArguments = errors.New("odd argument number")
	// ErrInvalidValue indicates a value that converts to the right type but
	// is outside of its permitted range or format.
	ErrInvalidValue = errors.New("invalid config value")
)

// SourceLoadError describes a source that could not be loaded.
type SourceLoadError struct {
	Origin string
	Cause  error
}

func (e *SourceLoadError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrSourceLoad, e.Origin, e.Cause)
}

func (e *SourceLoadError) Unwrap() []error {
	return []error{ErrSourceLoad, e.Cause}
}

// TypeMismatchError describes a failed typed lookup.
type TypeMismatchError struct {
	Key   string
	Want  string
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%v: '%s' has type %T rather than %s: %v", ErrTypeMismatch, e.Key, e.Value, e.Want, e.Value)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// ValidationError is the failure of a single named check.
type ValidationError struct {
	Check string
	Cause error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("check '%s': %v", e.Check, e.Cause)
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// MergeValidationError aggregates every failed check of one validation run.
type MergeValidationError struct {
	Errors []ValidationError
}

func (e *MergeValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		msgs = append(msgs, ve.Error())
	}
	return fmt.Sprintf("%v (%d failed): %s", ErrMergeValidation, len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes ErrMergeValidation as well as every individual cause, so
// errors.Is matches the sentinel of any failed check.
func (e *MergeValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors)+1)
	errs = append(errs, ErrMergeValidation)
	for _, ve := range e.Errors {
		errs = append(errs, ve)
	}
	return errs
}

// Checks lists the names of the failed checks.
func (e *MergeValidationError) Checks() []string {
	names := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		names = append(names, ve.Check)
	}
	return names
}

func missing(key string) error {
	return fmt.Errorf("%w: '%s'", ErrKeyMissing, key)
}
