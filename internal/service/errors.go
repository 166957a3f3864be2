package service

import (
	"errors"
	"fmt"
)

var ErrGeneratorNotConfigured = errors.New("question generator is not configured")

type GenerationReason string

const (
	// GenerationReasonTransport covers network, quota, timeout and
	// undecodable responses from the generator.
	GenerationReasonTransport GenerationReason = "transport"
	// GenerationReasonInvalidContent means the generator answered but the
	// questions failed validation.
	GenerationReasonInvalidContent GenerationReason = "invalid_content"
)

// GenerationError is the single failure kind the gateway reports. Reason is
// informational; callers treat every reason the same way.
type GenerationError struct {
	Reason   GenerationReason
	CacheKey string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("quiz generation failed (%s) for %s: %v", e.Reason, e.CacheKey, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

const acquisitionFailureMessage = "We couldn't generate a quiz for this topic right now, and no offline version is available. Please check your internet connection or select a different category."

// AcquisitionError is returned when cache, generation and offline data all
// failed to produce a quiz. Its message is safe to show to users.
type AcquisitionError struct {
	CategoryKey string
	Cause       error
}

func (e *AcquisitionError) Error() string {
	return acquisitionFailureMessage
}

func (e *AcquisitionError) Unwrap() error {
	return e.Cause
}
