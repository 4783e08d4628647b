package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/msyaifulbhr/hscode/internal/catalog"
	"github.com/msyaifulbhr/hscode/internal/config"
	"github.com/msyaifulbhr/hscode/internal/engine"
	"github.com/msyaifulbhr/hscode/internal/llm"
	"github.com/msyaifulbhr/hscode/internal/service"
	"github.com/msyaifulbhr/hscode/internal/storage"
)

// loadCatalog loads and validates the configured catalog file.
func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog.path")
	if path == "" {
		return nil, fmt.Errorf("catalog.path is not configured (set it in config.yaml or HSCODE_CATALOG_PATH)")
	}

	cat, err := catalog.Load(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	slog.Info("Loaded catalog", "entries", cat.Len(), "path", path)
	return cat, nil
}

// openStore opens the configured override store.
func openStore() (service.OverrideStore, error) {
	driver := viper.GetString("storage.driver")
	path := viper.GetString("storage.path")
	if path == "" {
		path = config.DefaultOverridesPath(driver)
	} else {
		path = config.ExpandPath(path)
	}

	store, err := storage.NewStore(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open override store: %w", err)
	}

	return store, nil
}

// createClassifier builds the LLM classifier from viper configuration.
func createClassifier(cat *catalog.Catalog) (*llm.Classifier, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RetryDelay:  viper.GetDuration("llm.retry_delay"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	return llm.NewClassifier(cfg, cat, slog.Default())
}

// createResolver wires the catalog, store and classifier into a
// resolver. The returned cleanup closes the store and classifier.
func createResolver(engineCfg engine.Config) (*engine.Resolver, func(), error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}

	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	classifier, err := createClassifier(cat)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := classifier.Close(); err != nil {
			slog.Error("Failed to close classifier", "error", err)
		}
		if err := store.Close(); err != nil {
			slog.Error("Failed to close override store", "error", err)
		}
	}

	resolver := engine.NewWithConfig(cat, store, classifier, slog.Default(), engineCfg)
	return resolver, cleanup, nil
}
