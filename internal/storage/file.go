package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
)

// FileStore implements service.OverrideStore on a single JSON file
// holding an array of {productName, correctCode} records. A missing
// file reads as an empty store; write failures propagate. All writes go
// through a read-modify-write cycle guarded by a mutex and land via an
// atomic rename, so readers never observe a partially written file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed override store at path. The file
// is created lazily on first upsert.
func NewFileStore(path string) (*FileStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create overrides directory: %w", err)
	}

	return &FileStore{path: path}, nil
}

// Lookup returns the override for a product name, or nil when no
// case-insensitive match exists.
func (s *FileStore) Lookup(ctx context.Context, productName string) (*model.Override, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(productName, "productName"); err != nil {
		return nil, err
	}

	overrides, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range overrides {
		if overrides[i].Matches(productName) {
			return &overrides[i], nil
		}
	}

	return nil, nil
}

// Upsert inserts or updates the override for its normalized key. An
// existing entry keeps its stored product name casing; only the code,
// source and timestamp are replaced.
func (s *FileStore) Upsert(ctx context.Context, override model.Override) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOverride(override); err != nil {
		return err
	}

	if override.LastUpdated.IsZero() {
		override.LastUpdated = time.Now().UTC()
	}
	if override.Source == "" {
		override.Source = model.SourceCorrection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides, err := s.load()
	if err != nil {
		return err
	}

	updated := false
	for i := range overrides {
		if overrides[i].Matches(override.ProductName) {
			overrides[i].CorrectCode = override.CorrectCode
			overrides[i].Source = override.Source
			overrides[i].LastUpdated = override.LastUpdated
			updated = true
			break
		}
	}
	if !updated {
		overrides = append(overrides, override)
	}

	return s.write(overrides)
}

// All returns every stored override in file order.
func (s *FileStore) All(ctx context.Context) ([]model.Override, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.load()
}

// Close is a no-op; the file is only held open during reads and writes.
func (s *FileStore) Close() error {
	return nil
}

// fileRecord is the on-disk shape. Source and timestamp are omitted
// when empty, so files written by older versions (or by hand, with just
// productName and correctCode) read back cleanly.
type fileRecord struct {
	ProductName string    `json:"productName"`
	CorrectCode string    `json:"correctCode"`
	Source      string    `json:"source,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (s *FileStore) load() ([]model.Override, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// Not yet created: an empty store, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrPersistence, s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", common.ErrPersistence, s.path, err)
	}

	overrides := make([]model.Override, len(records))
	for i, rec := range records {
		overrides[i] = model.Override{
			ProductName: rec.ProductName,
			CorrectCode: rec.CorrectCode,
			Source:      model.OverrideSource(rec.Source),
			LastUpdated: rec.LastUpdated,
		}
	}

	return overrides, nil
}

func (s *FileStore) write(overrides []model.Override) error {
	records := make([]fileRecord, len(overrides))
	for i, o := range overrides {
		records[i] = fileRecord{
			ProductName: o.ProductName,
			CorrectCode: o.CorrectCode,
			Source:      string(o.Source),
			LastUpdated: o.LastUpdated,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal overrides: %v", common.ErrPersistence, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrPersistence, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", common.ErrPersistence, tmp, err)
	}

	return nil
}
