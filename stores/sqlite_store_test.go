package stores

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStoreSimple(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get("absent")
	if err != nil {
		t.Errorf("Expected no error for missing key, got %v", err)
	}
	if ok {
		t.Error("Expected ok=false for missing key")
	}
}

func TestSQLiteStore_PutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(SessionsKey, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, ok, err := store.Get(SessionsKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected ok=true after Put")
	}
	if value != `[{"id":"a"}]` {
		t.Errorf("Expected stored value back, got %q", value)
	}
}

func TestSQLiteStore_PutOverwrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put("key", "first"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("key", "second"); err != nil {
		t.Fatalf("Second Put failed: %v", err)
	}

	value, _, err := store.Get("key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "second" {
		t.Errorf("Expected overwritten value, got %q", value)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put("key", "value"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := store.Get("key")
	if err != nil {
		t.Errorf("Get after delete failed: %v", err)
	}
	if ok {
		t.Error("Expected key to be gone after delete")
	}

	// Deleting a missing key is a no-op.
	if err := store.Delete("key"); err != nil {
		t.Errorf("Expected no error deleting a missing key, got %v", err)
	}
}

func TestSQLiteStore_Ping(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewStore_FromConfig(t *testing.T) {
	config := NewStoreConfig("sqlite", filepath.Join(t.TempDir(), "config.sqlite"))
	store, err := NewStore(config)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewStore_UnsupportedType(t *testing.T) {
	if _, err := NewStore(NewStoreConfig("mongodb", "")); err == nil {
		t.Error("Expected error for unsupported store type")
	}
}
