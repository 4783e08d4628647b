package llm

import (
	"context"
)

// Client defines the interface for inference providers.
type Client interface {
	Classify(ctx context.Context, prompt string) (ContractOutput, error)
}

// ContractOutput is the provider's structured classification result,
// already checked against the output schema (two required string
// fields, codeAndDescription in "CODE - description" shape). Catalog
// membership is validated by the Classifier, not here.
type ContractOutput struct {
	AnalysisText       string
	CodeAndDescription string
}
