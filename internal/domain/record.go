// Package domain defines the records served by the booking API and the edit
// buffers the client builds working copies in. Each record type declares a
// closed set of sections; the buffer for a record knows how to validate and
// serialize exactly the fields of the section it was seeded for.
package domain

import (
	"fmt"
	"strings"
)

// Record is any entity addressable as resource + id on the API.
type Record interface {
	RecordID() string
	RecordResource() string
}

// FieldError reports one invalid buffer field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every failed field check of one buffer. It is a
// local error: nothing was sent to the server.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// validationError returns nil when no field checks failed, so callers can
// return it directly.
func validationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func requireNonEmpty(fields []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(fields, FieldError{Field: field, Message: "cannot be empty"})
	}
	return fields
}

func requireMaxLen(fields []FieldError, field, value string, max int) []FieldError {
	if len([]rune(value)) > max {
		return append(fields, FieldError{Field: field, Message: fmt.Sprintf("longer than %d characters", max)})
	}
	return fields
}
