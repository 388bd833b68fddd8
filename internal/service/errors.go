package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned on any admin login mismatch.
	// Deliberately a single generic error so callers cannot distinguish an
	// unknown user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldErrors accumulates per-field validation failures keyed by field
// name. Every violated rule contributes one labeled message so the caller
// can surface all problems at once.
type FieldErrors map[string]string

// Add records a message for a field. The first message per field wins.
func (e FieldErrors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Error implements the error interface.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e[f])
	}
	return b.String()
}
