package storage

import (
	"encoding/json"
	"fmt"

	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
	"github.com/msyaifulbhr/hscode/internal/service"
)

// NewStore creates an override store for the configured driver.
// Supported drivers are "sqlite" and "file".
func NewStore(driver, path string) (service.OverrideStore, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLiteStore(path)
	case "file":
		return NewFileStore(path)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}

// OverrideBlock renders the full override table as a JSON array of
// {productName, correctCode} objects for inclusion in the inference
// prompt. The whole table is always rendered; nothing is truncated.
func OverrideBlock(overrides []model.Override) (string, error) {
	if len(overrides) == 0 {
		return "", nil
	}

	data, err := json.Marshal(overrides)
	if err != nil {
		return "", fmt.Errorf("%w: serialize overrides: %v", common.ErrPersistence, err)
	}

	return string(data), nil
}
