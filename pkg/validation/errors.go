package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidJSON is returned when a document cannot be decoded at all.
var ErrInvalidJSON = errors.New("invalid JSON")

// Error codes for machine-readable identification.
const (
	ErrCodeSchema    = "schema"
	ErrCodeDuplicate = "duplicate"
	ErrCodeReference = "reference"
)

// FieldError describes a single validation failure.
type FieldError struct {
	// Field is the dotted path of the offending value ("" for the document root).
	Field string `json:"field,omitempty"`

	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Result is the outcome of a validation run.
type Result struct {
	Valid  bool          `json:"valid"`
	Errors []*FieldError `json:"errors,omitempty"`
}

// AddError records an error and marks the result invalid.
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Merge folds other into r, prefixing each field with prefix when non-empty.
func (r *Result) Merge(prefix string, other *Result) {
	if other == nil {
		return
	}
	for _, e := range other.Errors {
		field := e.Field
		if prefix != "" {
			if field == "" {
				field = prefix
			} else {
				field = prefix + "." + field
			}
		}
		r.AddError(&FieldError{Field: field, Code: e.Code, Message: e.Message})
	}
}

// Summary joins all error messages into one line.
func (r *Result) Summary() string {
	if r == nil || len(r.Errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
