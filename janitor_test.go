package premguru

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestJanitor_BackupWritesSnapshot(t *testing.T) {
	store := newMemoryStore()
	store.data["love_guru_sessions"] = `[{"id":"s1"}]`
	path := filepath.Join(t.TempDir(), "backups", "sessions.json")

	j := NewJanitor(store, log.New(io.Discard, "", 0), path, "@hourly")
	j.run()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected backup file, got %v", err)
	}
	if string(raw) != `[{"id":"s1"}]` {
		t.Errorf("Expected snapshot to match stored record, got %q", string(raw))
	}
}

func TestJanitor_NoRecordNoBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	j := NewJanitor(newMemoryStore(), log.New(io.Discard, "", 0), path, "@hourly")
	j.run()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no backup file when the store holds no sessions")
	}
}

func TestJanitor_InvalidSchedule(t *testing.T) {
	j := NewJanitor(newMemoryStore(), log.New(io.Discard, "", 0), "sessions.json", "not a schedule")
	if err := j.Start(); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}

func TestJanitor_StartStop(t *testing.T) {
	j := NewJanitor(newMemoryStore(), log.New(io.Discard, "", 0), "sessions.json", "@hourly")
	if err := j.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := j.Start(); err == nil {
		t.Error("Expected second Start to be rejected")
	}
	j.Stop()
	// Stop after stop is a no-op.
	j.Stop()
}
