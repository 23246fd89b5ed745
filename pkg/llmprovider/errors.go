package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed (no messages, empty content)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderUnavailable indicates a network/transport failure reaching the provider
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderRejected indicates the provider returned an error status
	// (quota, malformed request, safety rejection)
	ErrProviderRejected = errors.New("provider rejected request")
)

// ProviderError wraps provider-specific errors with the provider name and
// the raw provider detail for diagnostics. It unwraps to one of the
// sentinel errors above so callers can classify with errors.Is.
type ProviderError struct {
	Provider string
	Kind     error // ErrProviderUnavailable or ErrProviderRejected
	Detail   error // raw provider error, surfaced verbatim
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v: %v", e.Provider, e.Kind, e.Detail)
}

func (e *ProviderError) Unwrap() error {
	return e.Kind
}
