package llm

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
)

// stubClient returns a fixed output or error.
type stubClient struct {
	err    error
	output ContractOutput
	calls  int
}

func (s *stubClient) Classify(_ context.Context, _ string) (ContractOutput, error) {
	s.calls++
	if s.err != nil {
		return ContractOutput{}, s.err
	}
	return s.output, nil
}

func TestClassifier_Classify(t *testing.T) {
	cat := promptTestCatalog(t)
	req := model.ClassificationRequest{ProductName: "sapi hidup"}
	blocks := cat.CandidateBlocks(nil)

	t.Run("catalog code is canonicalized to the catalog pairing", func(t *testing.T) {
		// The model paraphrased the description; the result must carry
		// the catalog's verbatim pairing anyway.
		client := &stubClient{output: ContractOutput{
			AnalysisText:       "Cattle are live bovine animals.",
			CodeAndDescription: "010229 - live cows and such",
		}}
		classifier := NewClassifierWithClient(client, cat, slog.Default())
		defer func() { _ = classifier.Close() }()

		result, err := classifier.Classify(context.Background(), req, blocks, "")
		require.NoError(t, err)
		assert.Equal(t, "010229 - Live cattle", result.CodeAndDescription)
		assert.Equal(t, model.StatusResolvedByAI, result.Status)
		assert.Equal(t, "sapi hidup", result.OriginalProductName)
		assert.Equal(t, "Cattle are live bovine animals.", result.AnalysisText)
	})

	t.Run("sentinel passes through", func(t *testing.T) {
		client := &stubClient{output: ContractOutput{
			AnalysisText:       "No candidate fits.",
			CodeAndDescription: "000000 - Unclassified",
		}}
		classifier := NewClassifierWithClient(client, cat, slog.Default())
		defer func() { _ = classifier.Close() }()

		result, err := classifier.Classify(context.Background(), req, blocks, "")
		require.NoError(t, err)
		assert.Equal(t, model.Sentinel(), result.CodeAndDescription)
		assert.Equal(t, model.StatusUnclassified, result.Status)
	})

	t.Run("fabricated code is a contract violation", func(t *testing.T) {
		client := &stubClient{output: ContractOutput{
			AnalysisText:       "Looks like heading 9999.",
			CodeAndDescription: "999999 - Something invented",
		}}
		classifier := NewClassifierWithClient(client, cat, slog.Default())
		defer func() { _ = classifier.Close() }()

		_, err := classifier.Classify(context.Background(), req, blocks, "")
		require.ErrorIs(t, err, common.ErrInvalidInferenceOutput)
	})

	t.Run("quota errors are not retried", func(t *testing.T) {
		client := &stubClient{err: common.ErrQuotaExhausted}
		classifier := NewClassifierWithClient(client, cat, slog.Default())
		defer func() { _ = classifier.Close() }()

		_, err := classifier.Classify(context.Background(), req, blocks, "")
		require.ErrorIs(t, err, common.ErrQuotaExhausted)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("invalid output is not retried", func(t *testing.T) {
		client := &stubClient{err: common.ErrInvalidInferenceOutput}
		classifier := NewClassifierWithClient(client, cat, slog.Default())
		defer func() { _ = classifier.Close() }()

		_, err := classifier.Classify(context.Background(), req, blocks, "")
		require.ErrorIs(t, err, common.ErrInvalidInferenceOutput)
		assert.Equal(t, 1, client.calls)
	})
}
