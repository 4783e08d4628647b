package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/msyaifulbhr/hscode/internal/catalog"
	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
	"github.com/msyaifulbhr/hscode/internal/service"
)

// Classifier implements the engine.Classifier interface using LLM APIs.
// It assembles the prompt contract, rate-limits provider calls, and
// canonicalizes the output against the catalog so that every result is
// a verbatim catalog pairing or the sentinel.
type Classifier struct {
	client      Client
	catalog     *catalog.Catalog
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// Config holds configuration for the LLM classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Endpoint    string
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// NewClassifier creates a new LLM-based classifier bound to a catalog.
func NewClassifier(cfg Config, cat *catalog.Catalog, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	// The engine itself never retries a failed resolution; transport
	// retries are opt-in via config.
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 1
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:      client,
		catalog:     cat,
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// NewClassifierWithClient wires a pre-built client, primarily for tests.
func NewClassifierWithClient(client Client, cat *catalog.Catalog, logger *slog.Logger) *Classifier {
	return &Classifier{
		client:      client,
		catalog:     cat,
		logger:      logger,
		retryOpts:   service.RetryOptions{MaxAttempts: 1},
		rateLimiter: newRateLimiter(0),
	}
}

// Classify resolves one product name against the candidate blocks.
func (c *Classifier) Classify(ctx context.Context, req model.ClassificationRequest, blocks catalog.CandidateBlocks, overrideBlock string) (model.ClassificationResult, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("rate limit error: %w", err)
	}

	prompt := buildPrompt(req, blocks, overrideBlock)

	var output ContractOutput

	err := common.WithRetry(ctx, func() error {
		c.logger.Debug("attempting LLM classification", "product_name", req.ProductName)

		resp, err := c.client.Classify(ctx, prompt)
		if err != nil {
			c.logger.Warn("LLM classification attempt failed",
				"error", err,
				"product_name", req.ProductName)
			return &common.RetryableError{Err: err, Retryable: common.IsRetryable(err)}
		}

		output = resp
		return nil
	}, c.retryOpts)

	if err != nil {
		return model.ClassificationResult{}, err
	}

	return c.canonicalize(req, output)
}

// canonicalize checks the selected code against the catalog and rewrites
// the pairing to the catalog's verbatim form. A code absent from the
// catalog is a fabrication and violates the contract.
func (c *Classifier) canonicalize(req model.ClassificationRequest, output ContractOutput) (model.ClassificationResult, error) {
	code := strings.SplitN(output.CodeAndDescription, " - ", 2)[0]

	result := model.ClassificationResult{
		ResolvedAt:          time.Now().UTC(),
		OriginalProductName: req.ProductName,
		AnalysisText:        output.AnalysisText,
	}

	if code == model.SentinelCode {
		result.CodeAndDescription = model.Sentinel()
		result.Status = model.StatusUnclassified

		c.logger.Info("no reasonable candidate match",
			"product_name", req.ProductName)
		return result, nil
	}

	entry, ok := c.catalog.Lookup(code)
	if !ok {
		return model.ClassificationResult{}, fmt.Errorf("%w: code %s is not in the candidate set",
			common.ErrInvalidInferenceOutput, code)
	}

	result.CodeAndDescription = entry.Pairing()
	result.Status = model.StatusResolvedByAI

	c.logger.Info("product classified",
		"product_name", req.ProductName,
		"code", entry.Code)

	return result, nil
}

// Close stops background goroutines and cleans up resources.
func (c *Classifier) Close() error {
	if c.rateLimiter != nil {
		c.rateLimiter.Close()
	}
	return nil
}
