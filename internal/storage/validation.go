// Package storage provides the override persistence layer.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msyaifulbhr/hscode/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrInvalidOverride = errors.New("invalid override")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOverride ensures an override has a name and a plausible code.
func validateOverride(override model.Override) error {
	if strings.TrimSpace(override.ProductName) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidOverride)
	}
	if len(override.CorrectCode) < 6 {
		return fmt.Errorf("%w: code %q is shorter than 6 characters", ErrInvalidOverride, override.CorrectCode)
	}
	return nil
}
