// Package catalog loads and validates the HS code table and builds the
// candidate blocks offered to the inference step.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
)

// Catalog is the immutable-at-runtime table of valid HS codes. It is
// loaded once per process and never mutated afterwards.
type Catalog struct {
	byCode  map[string]model.CodeEntry
	entries []model.CodeEntry
}

// Load reads a JSON array of {code, description} records from path and
// validates every entry. Malformed codes, empty descriptions and
// duplicate codes are load-time errors, never silently repaired.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entries []model.CodeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	return New(entries)
}

// New builds a catalog from in-memory entries, applying the same
// validation as Load.
func New(entries []model.CodeEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, common.ErrEmptyCatalog
	}

	byCode := make(map[string]model.CodeEntry, len(entries))
	for i, entry := range entries {
		if !model.ValidCode(entry.Code) {
			return nil, fmt.Errorf("%w: entry %d has code %q, want exactly 6 digits",
				common.ErrInvalidCatalogEntry, i, entry.Code)
		}
		if entry.Description == "" {
			return nil, fmt.Errorf("%w: entry %d (code %s) has an empty description",
				common.ErrInvalidCatalogEntry, i, entry.Code)
		}
		if _, exists := byCode[entry.Code]; exists {
			return nil, fmt.Errorf("%w: %s", common.ErrDuplicateCode, entry.Code)
		}
		byCode[entry.Code] = entry
	}

	return &Catalog{
		entries: entries,
		byCode:  byCode,
	}, nil
}

// Entries returns the catalog rows in load order.
func (c *Catalog) Entries() []model.CodeEntry {
	return c.entries
}

// Lookup returns the entry for a code, if present.
func (c *Catalog) Lookup(code string) (model.CodeEntry, bool) {
	entry, ok := c.byCode[code]
	return entry, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
