// Package engine implements the resolution orchestrator that turns raw
// product input into HS code classifications.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/msyaifulbhr/hscode/internal/catalog"
	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
	"github.com/msyaifulbhr/hscode/internal/service"
	"github.com/msyaifulbhr/hscode/internal/storage"
)

// minItemLength is the minimum length of a product name after trimming.
const minItemLength = 2

// Resolver coordinates the catalog, the override store and the
// inference step for each resolution request.
type Resolver struct {
	catalog       *catalog.Catalog
	store         service.OverrideStore
	classifier    Classifier
	logger        *slog.Logger
	onProgress    func(completed, total int)
	maxConcurrent int
}

// Config holds configuration options for the resolver.
type Config struct {
	// OnProgress, when set, is invoked after each batch item finishes.
	OnProgress func(completed, total int)
	// MaxConcurrent bounds the in-flight inference calls per batch.
	MaxConcurrent int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent: 5,
	}
}

// New creates a resolver with the given dependencies.
func New(cat *catalog.Catalog, store service.OverrideStore, classifier Classifier, logger *slog.Logger) *Resolver {
	return NewWithConfig(cat, store, classifier, logger, DefaultConfig())
}

// NewWithConfig creates a resolver with custom configuration.
func NewWithConfig(cat *catalog.Catalog, store service.OverrideStore, classifier Classifier, logger *slog.Logger, config Config) *Resolver {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultConfig().MaxConcurrent
	}
	return &Resolver{
		catalog:       cat,
		store:         store,
		classifier:    classifier,
		logger:        logger,
		onProgress:    config.OnProgress,
		maxConcurrent: config.MaxConcurrent,
	}
}

// Resolve classifies one or more semicolon-separated product names.
// Results are positional: results[i] belongs to the i-th surviving
// input segment. The batch is all-or-nothing: one failed item fails the
// whole call, and the error names the item and the cause.
func (r *Resolver) Resolve(ctx context.Context, rawInput, productContext string, priority model.PriorityList) ([]model.ClassificationResult, error) {
	items := splitItems(rawInput)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: input %q has no segment of at least %d characters",
			common.ErrNoValidItems, rawInput, minItemLength)
	}

	blocks := r.catalog.CandidateBlocks(priority)

	// Overrides are read fresh on every resolution; no cache hides a
	// correction recorded since the last call.
	overrides, err := r.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	overrideBlock, err := storage.OverrideBlock(overrides)
	if err != nil {
		return nil, err
	}

	r.logger.Info("resolving batch",
		"items", len(items),
		"overrides", len(overrides),
		"priority_codes", len(priority))

	results := make([]model.ClassificationResult, len(items))
	errs := make([]error, len(items))

	var completed int
	var progressMu sync.Mutex
	markDone := func() {
		if r.onProgress == nil {
			return
		}
		progressMu.Lock()
		completed++
		r.onProgress(completed, len(items))
		progressMu.Unlock()
	}

	sem := make(chan struct{}, r.maxConcurrent)
	var wg sync.WaitGroup

	for i, item := range items {
		// A stored correction preempts inference entirely: the answer is
		// deterministic regardless of what the model would produce.
		if result, ok := r.resolveFromOverride(item, overrides); ok {
			results[i] = result
			markDone()
			continue
		}

		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()
			defer markDone()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			req := model.ClassificationRequest{
				ProductName:    name,
				ProductContext: productContext,
			}

			result, err := r.classifier.Classify(ctx, req, blocks, overrideBlock)
			if err != nil {
				errs[idx] = err
				return
			}

			result.OriginalProductName = name
			results[idx] = result
		}(i, item)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to classify %q: %w", items[i], err)
		}
	}

	return results, nil
}

// resolveFromOverride builds a result directly from a stored correction
// when one matches the item exactly (case-insensitive). An override
// whose code is missing from the catalog cannot yield a valid pairing
// and falls through to inference.
func (r *Resolver) resolveFromOverride(item string, overrides []model.Override) (model.ClassificationResult, bool) {
	for _, override := range overrides {
		if !override.Matches(item) {
			continue
		}

		entry, ok := r.catalog.Lookup(override.CorrectCode)
		if !ok {
			r.logger.Warn("override code not in catalog, falling back to inference",
				"product_name", override.ProductName,
				"code", override.CorrectCode)
			return model.ClassificationResult{}, false
		}

		r.logger.Info("applying stored override",
			"product_name", item,
			"code", entry.Code)

		return model.ClassificationResult{
			ResolvedAt:          time.Now().UTC(),
			OriginalProductName: item,
			AnalysisText: fmt.Sprintf("Resolved from a stored user correction for %q.",
				override.ProductName),
			CodeAndDescription: entry.Pairing(),
			Status:             model.StatusResolvedByOverride,
		}, true
	}

	return model.ClassificationResult{}, false
}

// splitItems splits raw input on semicolons, trims each segment and
// drops segments shorter than the minimum item length.
func splitItems(rawInput string) []string {
	var items []string
	for _, segment := range strings.Split(rawInput, ";") {
		segment = strings.TrimSpace(segment)
		if len([]rune(segment)) < minItemLength {
			continue
		}
		items = append(items, segment)
	}
	return items
}
