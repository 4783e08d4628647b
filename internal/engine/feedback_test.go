package engine

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msyaifulbhr/hscode/internal/model"
)

func TestResolver_RecordFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("correction is visible to the next resolve", func(t *testing.T) {
		cat := testCatalog(t)
		store := testStore(t)
		mock := NewMockClassifier(cat)
		mock.Codes["sapi"] = "847130" // model is wrong about cattle
		resolver := New(cat, store, mock, slog.Default())

		require.NoError(t, resolver.RecordFeedback(ctx, "Sapi Hidup", "010229", model.SourceCorrection))

		results, err := resolver.Resolve(ctx, "sapi hidup", "", nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "010229 - Live cattle", results[0].CodeAndDescription)
		assert.Equal(t, model.StatusResolvedByOverride, results[0].Status)
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("confirmation records the confirmed source", func(t *testing.T) {
		cat := testCatalog(t)
		store := testStore(t)
		resolver := New(cat, store, nil, slog.Default())

		require.NoError(t, resolver.RecordFeedback(ctx, "kopi arabika", "090111", model.SourceConfirmed))

		override, err := store.Lookup(ctx, "kopi arabika")
		require.NoError(t, err)
		require.NotNil(t, override)
		assert.Equal(t, model.SourceConfirmed, override.Source)
	})

	t.Run("repeated feedback keeps a single entry", func(t *testing.T) {
		cat := testCatalog(t)
		store := testStore(t)
		resolver := New(cat, store, nil, slog.Default())

		require.NoError(t, resolver.RecordFeedback(ctx, "Kopi Arabika", "090111", model.SourceCorrection))
		require.NoError(t, resolver.RecordFeedback(ctx, "KOPI ARABIKA", "010229", model.SourceCorrection))

		all, err := store.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		// The latest code wins; the first recorded casing survives.
		assert.Equal(t, "010229", all[0].CorrectCode)
		assert.Equal(t, "Kopi Arabika", all[0].ProductName)
	})

	t.Run("rejects short product names", func(t *testing.T) {
		resolver := New(testCatalog(t), testStore(t), nil, slog.Default())

		for _, name := range []string{"", " ", "a", "  a  "} {
			err := resolver.RecordFeedback(ctx, name, "010229", model.SourceCorrection)
			assert.Error(t, err, "name %q", name)
		}
	})

	t.Run("rejects short codes", func(t *testing.T) {
		resolver := New(testCatalog(t), testStore(t), nil, slog.Default())

		err := resolver.RecordFeedback(ctx, "sapi hidup", "0102", model.SourceCorrection)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6 characters")
	})
}
