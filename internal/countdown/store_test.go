package countdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), zap.NewNop())
}

func TestPutGetDelete(t *testing.T) {
	store := newTestStore(t)

	item := Item{
		ID:         "cd_test",
		Name:       "Launch",
		TargetDate: "2025-06-01T00:00:00Z",
		Timezone:   "UTC",
		CreatedAt:  "2024-01-01T00:00:00Z",
	}

	if err := store.Put(item); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get("cd_test")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != item {
		t.Errorf("Get() = %+v, want %+v", got, item)
	}

	deleted, err := store.Delete("cd_test")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != "cd_test" {
		t.Errorf("Delete() returned %+v", deleted)
	}

	if _, err := store.Get("cd_test"); err == nil {
		t.Error("Get() after delete expected error, got nil")
	}
}

func TestPutUpsertsByID(t *testing.T) {
	store := newTestStore(t)

	first := Item{ID: "cd_x", Name: "First", TargetDate: "2025-01-01T00:00:00Z", Timezone: "UTC"}
	second := Item{ID: "cd_x", Name: "Second", TargetDate: "2025-02-01T00:00:00Z", Timezone: "UTC"}

	if err := store.Put(first); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(second); err != nil {
		t.Fatal(err)
	}

	items, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("List() length = %d, want 1", len(items))
	}
	if items[0].Name != "Second" {
		t.Errorf("item name = %q, want Second", items[0].Name)
	}
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)

	items, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() length = %d, want 0", len(items))
	}
}

func TestCorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "countdown.json"), []byte("[{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir, zap.NewNop())
	items, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() length = %d, want 0", len(items))
	}
}

func TestNewID(t *testing.T) {
	id := NewID()
	if !strings.HasPrefix(id, "cd_") {
		t.Errorf("NewID() = %q, want cd_ prefix", id)
	}
	if len(id) <= len("cd_") {
		t.Errorf("NewID() = %q, want a suffix", id)
	}
}
