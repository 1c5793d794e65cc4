package domain

import (
	"context"
	"errors"
	"fmt"
)

type AbsenceReason string

const (
	ReasonNetwork    AbsenceReason = "network"
	ReasonTimeout    AbsenceReason = "timeout"
	ReasonHTTPStatus AbsenceReason = "http_status"
	ReasonDecode     AbsenceReason = "decode"
	ReasonCanceled   AbsenceReason = "canceled"
)

// ProviderError explains why an exchange is missing from a QuoteSet.
type ProviderError struct {
	Provider string
	Reason   AbsenceReason
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s unavailable (%s): %v", e.Provider, e.Reason, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func NewProviderError(provider string, reason AbsenceReason, err error) *ProviderError {
	return &ProviderError{Provider: provider, Reason: reason, Err: err}
}

// ReasonOf classifies err. Errors that are not a *ProviderError are reported
// by their context state, defaulting to network.
func ReasonOf(err error) AbsenceReason {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	default:
		return ReasonNetwork
	}
}
