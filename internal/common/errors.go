// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Common application errors.
var (
	// Catalog errors.
	ErrEmptyCatalog        = errors.New("catalog is empty")
	ErrDuplicateCode       = errors.New("duplicate catalog code")
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")

	// Override store errors.
	ErrPersistence = errors.New("override persistence failed")
	ErrNotFound    = errors.New("not found")

	// Inference errors.
	ErrInvalidInferenceOutput = errors.New("inference output violates the result contract")
	ErrInferenceUnavailable   = errors.New("inference provider unavailable")
	ErrQuotaExhausted         = errors.New("inference provider quota exhausted")

	// Input validation errors.
	ErrNoValidItems = errors.New("no valid items in input")

	// Retry errors.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// QuotaCooldown is how long callers should wait before retrying after
// the provider signals quota exhaustion.
const QuotaCooldown = 60 * time.Second

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	// Quota exhaustion is not retryable without a cooldown; the engine
	// surfaces it to the caller instead of spinning on it.
	if errors.Is(err, ErrQuotaExhausted) {
		return false
	}

	if errors.Is(err, ErrInferenceUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
