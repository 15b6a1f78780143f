package utils

import "fmt"

type ProviderErrorKind string

const (
	ProviderErrorTransport ProviderErrorKind = "transport"
	ProviderErrorMalformed ProviderErrorKind = "malformed"
)

// ProviderError carries the provider's own message so callers can display it verbatim.
type ProviderError struct {
	Kind     ProviderErrorKind
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() []error {
	sentinel := ErrProviderTransport
	if e.Kind == ProviderErrorMalformed {
		sentinel = ErrProviderMalformed
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

func newTransportError(provider string, status int, message string, err error) *ProviderError {
	return &ProviderError{Kind: ProviderErrorTransport, Provider: provider, Status: status, Message: message, Err: err}
}

func newMalformedError(provider, message string) *ProviderError {
	return &ProviderError{Kind: ProviderErrorMalformed, Provider: provider, Message: message}
}
