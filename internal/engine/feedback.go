package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/msyaifulbhr/hscode/internal/model"
)

// RecordFeedback validates and stores a user correction or
// confirmation. The change is visible to the next Resolve call
// immediately; overrides are re-read fresh on every resolution.
func (r *Resolver) RecordFeedback(ctx context.Context, productName, correctCode string, source model.OverrideSource) error {
	productName = strings.TrimSpace(productName)
	if len([]rune(productName)) < minItemLength {
		return fmt.Errorf("product name must be at least %d characters", minItemLength)
	}
	if len(correctCode) < 6 {
		return fmt.Errorf("correct code must be at least 6 characters, got %q", correctCode)
	}

	err := r.store.Upsert(ctx, model.Override{
		ProductName: productName,
		CorrectCode: correctCode,
		Source:      source,
	})
	if err != nil {
		return fmt.Errorf("failed to record feedback for %q: %w", productName, err)
	}

	r.logger.Info("feedback recorded",
		"product_name", productName,
		"code", correctCode,
		"source", source)

	return nil
}
