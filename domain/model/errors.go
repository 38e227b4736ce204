package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors wrapped by FieldError and ValidationError.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field value")
	ErrNullPayload  = errors.New("payload is null")
	ErrUnknownModel = errors.New("unknown model")
)

// FieldError describes one rejected field. Field is a JSON path relative to
// the model that reported it, e.g. "filters.must[0].field".
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Unwrap returns the sentinel classifying the failure.
func (e FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every field error found on one model.
type ValidationError struct {
	Model  string
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Model, strings.Join(msgs, "; "))
}

// Unwrap exposes the field errors so errors.Is matches their sentinels.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// Has reports whether a field error was recorded for the given path.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func missing(field string) FieldError {
	return FieldError{Field: field, Reason: "is required", Err: ErrMissingField}
}

func invalid(field, reason string) FieldError {
	return FieldError{Field: field, Reason: reason, Err: ErrInvalidField}
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	case strings.HasPrefix(field, "["):
		return prefix + field
	default:
		return prefix + "." + field
	}
}

// KeyPath appends a map key to prefix. Keys that would be ambiguous in a
// dotted path are quoted: KeyPath("tag_weights", "v1.2") is
// `tag_weights["v1.2"]`.
func KeyPath(prefix, key string) string {
	if key == "" || strings.ContainsAny(key, `.[]"`) {
		return prefix + "[" + strconv.Quote(key) + "]"
	}
	return joinPath(prefix, key)
}
