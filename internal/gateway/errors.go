package gateway

import (
	"errors"

	"github.com/pysugar/code-facts/internal/db"
)

// Failure kinds. Match them with errors.Is against any error returned by the
// Gateway.
var (
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrUnknownProvider      = errors.New("unknown provider")
	ErrCredentialMissing    = errors.New("credential missing")
	ErrProviderError        = errors.New("provider error")
	ErrTransportError       = errors.New("transport error")
	ErrStorageUnavailable   = db.ErrStorageUnavailable
)

// Error is a classified gateway failure. Message is meant to be shown to the
// user verbatim.
type Error struct {
	Kind       error
	Provider   string
	StatusCode int // upstream HTTP status, ProviderError only
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

// KindName returns a stable snake_case name for err's kind, or "internal_error".
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, ErrUnknownProvider):
		return "unknown_provider"
	case errors.Is(err, ErrCredentialMissing):
		return "credential_missing"
	case errors.Is(err, ErrProviderError):
		return "provider_error"
	case errors.Is(err, ErrTransportError):
		return "transport_error"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "internal_error"
	}
}
