// Package service defines the interfaces shared between application layers.
package service

import (
	"context"
	"time"

	"github.com/msyaifulbhr/hscode/internal/model"
)

// OverrideStore defines the contract for override persistence. The
// resolution engine reads the store fresh on every call; nothing is
// cached between resolutions.
type OverrideStore interface {
	// Lookup returns the override whose product name matches
	// case-insensitively, or nil when no override exists. A missing
	// backing file or empty table is not an error.
	Lookup(ctx context.Context, productName string) (*model.Override, error)

	// Upsert records a correction. An existing case-insensitive match is
	// updated in place, keeping the stored product name's original
	// casing; otherwise a new override is appended with the incoming
	// name as given. Storage failures must propagate.
	Upsert(ctx context.Context, override model.Override) error

	// All returns every stored override.
	All(ctx context.Context) ([]model.Override, error)

	Close() error
}

// RetryOptions configures retry behavior for transient operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
