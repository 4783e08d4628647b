package engine

import (
	"context"

	"github.com/msyaifulbhr/hscode/internal/catalog"
	"github.com/msyaifulbhr/hscode/internal/model"
)

// Classifier defines the contract for the inference step. The returned
// result's CodeAndDescription is always a verbatim catalog pairing or
// the sentinel.
type Classifier interface {
	Classify(ctx context.Context, req model.ClassificationRequest, blocks catalog.CandidateBlocks, overrideBlock string) (model.ClassificationResult, error)
}
