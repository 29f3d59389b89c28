package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrEmptyHeaders = errors.New("dataset has no headers")

	// Provider errors
	ErrNoProviders     = errors.New("no analysis providers configured")
	ErrEmptyReply      = errors.New("provider returned an empty reply")
	ErrProviderTimeout = errors.New("provider timed out")
)

// NewProviderError tags a provider failure with the provider name
func NewProviderError(provider string, err error) error {
	return fmt.Errorf("provider %s: %w", provider, err)
}

// IsTimeout reports whether err is a provider timeout
func IsTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}
