package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/msyaifulbhr/hscode/internal/model"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "overrides.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close store: %v", err)
		}
	})

	return store
}

func TestSQLiteStore_LookupCaseInsensitive(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	override := model.Override{ProductName: "Sapi Hidup", CorrectCode: "010229"}
	if err := store.Upsert(ctx, override); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	for _, name := range []string{"Sapi Hidup", "sapi hidup", "SAPI HIDUP", "  sapi hidup  "} {
		got, err := store.Lookup(ctx, name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if got == nil {
			t.Fatalf("Lookup(%q) returned nil, want override", name)
		}
		if got.ProductName != "Sapi Hidup" {
			t.Errorf("Lookup(%q) returned name %q, want original casing preserved", name, got.ProductName)
		}
		if got.CorrectCode != "010229" {
			t.Errorf("Lookup(%q) returned code %q, want 010229", name, got.CorrectCode)
		}
	}
}

func TestSQLiteStore_LookupMissing(t *testing.T) {
	store := createTestStore(t)

	got, err := store.Lookup(context.Background(), "never seen")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got != nil {
		t.Errorf("Lookup returned %+v, want nil for missing key", got)
	}
}

func TestSQLiteStore_UpsertIdempotent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	override := model.Override{ProductName: "thermometer", CorrectCode: "902511"}
	for i := 0; i < 2; i++ {
		if err := store.Upsert(ctx, override); err != nil {
			t.Fatalf("Upsert %d failed: %v", i, err)
		}
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Got %d overrides after repeated identical upserts, want 1", len(all))
	}
}

func TestSQLiteStore_UpsertLastWriteWins(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, model.Override{ProductName: "Laptop Computer", CorrectCode: "847130"}); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	// Same normalized key, different casing and code: the stored casing
	// must survive, the code must be replaced.
	if err := store.Upsert(ctx, model.Override{ProductName: "LAPTOP COMPUTER", CorrectCode: "847141"}); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Got %d overrides, want 1", len(all))
	}
	if all[0].CorrectCode != "847141" {
		t.Errorf("Got code %q, want last write 847141", all[0].CorrectCode)
	}
	if all[0].ProductName != "Laptop Computer" {
		t.Errorf("Got name %q, want existing casing Laptop Computer", all[0].ProductName)
	}
}

func TestSQLiteStore_UpsertValidation(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, model.Override{ProductName: "", CorrectCode: "010229"}); err == nil {
		t.Error("Upsert with empty name succeeded, want error")
	}
	if err := store.Upsert(ctx, model.Override{ProductName: "cow", CorrectCode: "0102"}); err == nil {
		t.Error("Upsert with short code succeeded, want error")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Upsert(ctx, model.Override{ProductName: "sapi hidup", CorrectCode: "010229"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Lookup(ctx, "SAPI HIDUP")
	if err != nil {
		t.Fatalf("Lookup after reopen failed: %v", err)
	}
	if got == nil || got.CorrectCode != "010229" {
		t.Errorf("Lookup after reopen returned %+v, want code 010229", got)
	}
}

func TestSQLiteStore_ConcurrentUpsertsSameKey(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			done <- store.Upsert(ctx, model.Override{ProductName: "sapi hidup", CorrectCode: "010229"})
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Fatalf("Concurrent upsert failed: %v", err)
		}
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Got %d overrides after concurrent same-key upserts, want 1", len(all))
	}
}
