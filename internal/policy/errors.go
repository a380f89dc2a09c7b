// Package policy holds the authorization and status-derivation rules for
// inventory and recipe mutations. Everything in here is pure and stateless:
// callers pass the acting identity and the requested change, and get back
// either the effective change or a rejection. The package never touches
// storage, so a rejection is always raised before any write.
package policy

import (
	"errors"
	"strings"
)

var (
	// ErrForbidden means the identity is known but lacks the role or
	// ownership required for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput means the payload failed schema or range checks.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes a single rejected payload field.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// FieldErrors is the error returned for payload validation failures.
// It unwraps to ErrInvalidInput so callers can classify it with errors.Is.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Description
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error { return ErrInvalidInput }
