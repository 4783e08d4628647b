package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.OverrideStore using SQLite. Overrides
// are keyed by the lowercased product name; the original casing of the
// first writer is preserved on update, matching the file store.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the override database at dbPath and
// runs pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes same-key writers, which is the
	// lost-update guard the engine relies on.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.migrate(context.Background()); err != nil {
		return nil, err
	}

	return store, nil
}

// Lookup returns the override for a product name, or nil when no
// case-insensitive match exists.
func (s *SQLiteStore) Lookup(ctx context.Context, productName string) (*model.Override, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(productName, "productName"); err != nil {
		return nil, err
	}

	var override model.Override
	var source string

	err := s.db.QueryRowContext(ctx, `
		SELECT product_name, correct_code, source, last_updated
		FROM overrides
		WHERE name_normalized = ?
	`, model.NormalizeKey(productName)).Scan(
		&override.ProductName,
		&override.CorrectCode,
		&source,
		&override.LastUpdated,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %q: %v", common.ErrPersistence, productName, err)
	}

	override.Source = model.OverrideSource(source)
	return &override, nil
}

// Upsert inserts or updates the override for its normalized key. The
// stored product name of an existing row wins over the incoming casing.
func (s *SQLiteStore) Upsert(ctx context.Context, override model.Override) error {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overrides (name_normalized, product_name, correct_code, source, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name_normalized) DO UPDATE SET
			correct_code = excluded.correct_code,
			source = excluded.source,
			last_updated = excluded.last_updated
	`, model.NormalizeKey(override.ProductName),
		override.ProductName,
		override.CorrectCode,
		string(override.Source),
		override.LastUpdated,
	)

	if err != nil {
		return fmt.Errorf("%w: upsert %q: %v", common.ErrPersistence, override.ProductName, err)
	}

	return nil
}

// All returns every stored override ordered by product name.
func (s *SQLiteStore) All(ctx context.Context) ([]model.Override, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, correct_code, source, last_updated
		FROM overrides
		ORDER BY product_name
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list overrides: %v", common.ErrPersistence, err)
	}
	defer func() { _ = rows.Close() }()

	var overrides []model.Override
	for rows.Next() {
		var override model.Override
		var source string
		if err := rows.Scan(
			&override.ProductName,
			&override.CorrectCode,
			&source,
			&override.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("%w: scan override: %v", common.ErrPersistence, err)
		}
		override.Source = model.OverrideSource(source)
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list overrides: %v", common.ErrPersistence, err)
	}

	return overrides, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
