package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
)

func testEntries() []model.CodeEntry {
	return []model.CodeEntry{
		{Code: "010229", Description: "Live cattle, other than pure-bred breeding animals"},
		{Code: "847130", Description: "Portable automatic data processing machines, weighing not more than 10 kg"},
		{Code: "382200", Description: "Diagnostic or laboratory reagents on a backing"},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		entries []model.CodeEntry
	}{
		{
			name:    "valid entries",
			entries: testEntries(),
		},
		{
			name:    "empty catalog",
			entries: nil,
			wantErr: common.ErrEmptyCatalog,
		},
		{
			name: "duplicate code",
			entries: []model.CodeEntry{
				{Code: "010229", Description: "Live cattle"},
				{Code: "010229", Description: "Live cattle again"},
			},
			wantErr: common.ErrDuplicateCode,
		},
		{
			name: "code too short",
			entries: []model.CodeEntry{
				{Code: "1022", Description: "Live cattle"},
			},
			wantErr: common.ErrInvalidCatalogEntry,
		},
		{
			name: "code with letters",
			entries: []model.CodeEntry{
				{Code: "01A229", Description: "Live cattle"},
			},
			wantErr: common.ErrInvalidCatalogEntry,
		},
		{
			name: "empty description",
			entries: []model.CodeEntry{
				{Code: "010229", Description: ""},
			},
			wantErr: common.ErrInvalidCatalogEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := New(tt.entries)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.entries), cat.Len())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.json")
		data := `[
			{"code": "010229", "description": "Live cattle"},
			{"code": "847130", "description": "Portable computers"}
		]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0600))

		cat, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cat.Len())

		entry, ok := cat.Lookup("847130")
		require.True(t, ok)
		assert.Equal(t, "847130 - Portable computers", entry.Pairing())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0600))

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("duplicate code fails before serving", func(t *testing.T) {
		path := filepath.Join(dir, "dup.json")
		data := `[
			{"code": "010229", "description": "Live cattle"},
			{"code": "010229", "description": "Live cattle again"}
		]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0600))

		_, err := Load(path)
		require.ErrorIs(t, err, common.ErrDuplicateCode)
	})
}

func TestCandidateBlocks(t *testing.T) {
	cat, err := New(testEntries())
	require.NoError(t, err)

	t.Run("full block in catalog order", func(t *testing.T) {
		blocks := cat.CandidateBlocks(nil)
		assert.Empty(t, blocks.Priority)
		assert.Equal(t,
			"010229 - Live cattle, other than pure-bred breeding animals\n"+
				"847130 - Portable automatic data processing machines, weighing not more than 10 kg\n"+
				"382200 - Diagnostic or laboratory reagents on a backing",
			blocks.Full)
	})

	t.Run("priority block in priority order", func(t *testing.T) {
		blocks := cat.CandidateBlocks(model.PriorityList{"382200", "010229"})
		assert.Equal(t,
			"382200 - Diagnostic or laboratory reagents on a backing\n"+
				"010229 - Live cattle, other than pure-bred breeding animals",
			blocks.Priority)
		// The full block always carries every entry; priority orders, it
		// never filters.
		assert.Contains(t, blocks.Full, "847130")
	})

	t.Run("unknown priority codes are skipped", func(t *testing.T) {
		blocks := cat.CandidateBlocks(model.PriorityList{"999999", "847130"})
		assert.Equal(t,
			"847130 - Portable automatic data processing machines, weighing not more than 10 kg",
			blocks.Priority)
	})
}
