package model

import (
	"errors"
	"fmt"
)

// Resolution failure reasons. An *AuthError unwraps to exactly one of these.
var (
	ErrNotConfigured     = errors.New("not configured")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrUnsupportedScheme = errors.New("unsupported scheme")
)

// AuthError reports why credentials for a domain could not be resolved.
// Match the reason with errors.Is(err, ErrInvalidRecord) and friends.
type AuthError struct {
	Domain string
	// Scheme is the record's scheme tag, empty when the record has none or
	// no record exists.
	Scheme string
	Reason error
}

// NewAuthError creates an AuthError for domain with the given reason sentinel.
func NewAuthError(domain, scheme string, reason error) *AuthError {
	return &AuthError{Domain: domain, Scheme: scheme, Reason: reason}
}

func (e *AuthError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrNotConfigured):
		return fmt.Sprintf("no authentication data for %s", e.Domain)
	case errors.Is(e.Reason, ErrUnsupportedScheme):
		return fmt.Sprintf("invalid authentication type %q for %s", e.Scheme, e.Domain)
	case e.Scheme == string(SchemeBasic):
		return fmt.Sprintf("basic authentication data for %s is invalid", e.Domain)
	default:
		return fmt.Sprintf("authentication data for %s is invalid", e.Domain)
	}
}

func (e *AuthError) Unwrap() error { return e.Reason }
