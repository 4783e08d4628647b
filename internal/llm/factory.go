package llm

import (
	"fmt"
	"strings"
)

// NewClient creates a raw inference client based on the provided
// configuration. Most callers want NewClassifier instead, which adds
// rate limiting, retry and output canonicalization on top.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
