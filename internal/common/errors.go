package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// Credential errors
	ErrAPIKeyMissing = errors.New("API key missing")
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// Generation errors
	ErrNoPlatformsSelected = errors.New("please select at least one platform")
	ErrEmptyResponse       = errors.New("no response generated")
	ErrNoImageInResponse   = errors.New("no image data found in response")
	ErrGenerationInFlight  = errors.New("a generation request is already in progress")
	ErrNoGeneratedContent  = errors.New("no generated content available")

	// Schedule errors
	ErrMissingScheduleDate = errors.New("please select a date and time to schedule this content")
	ErrCampaignNotFound    = errors.New("scheduled campaign not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrPostNotFound = errors.New("post not found")
)

// ValidationError marks a campaign input failure that is surfaced inline
// and never sent to a downstream service.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// GenerationBlockedError means the call completed but produced no usable
// content for a policy reason reported by the model.
type GenerationBlockedError struct {
	Reason string
}

func (e *GenerationBlockedError) Error() string {
	return fmt.Sprintf("generation blocked: %s", e.Reason)
}

// MalformedResponseError means the model's reply did not conform to the
// declared output schema. It is never retried.
type MalformedResponseError struct {
	Detail string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("malformed response: %s", e.Detail)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsCredentialError reports whether err is one of the credential failures
// that should open the key-repair flow instead of the normal error display.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrAPIKeyMissing) || errors.Is(err, ErrAPIKeyInvalid)
}
