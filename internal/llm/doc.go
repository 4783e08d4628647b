// Package llm implements the inference adapter for HS code resolution.
// It wraps text-model providers (OpenAI and Anthropic) behind a single
// structured-output contract: candidates in, one verbatim catalog
// pairing (or the sentinel) out. The adapter owns the prompt contract
// and its validation, not the inference mechanics.
package llm
