package build

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Get(42); ok {
		t.Fatal("empty store must not return a build")
	}

	first := ActiveBuild{
		ID:        uuid.New(),
		UserID:    42,
		Config:    DefaultConfig(),
		StartedAt: time.Now().UTC(),
		Status:    StatusRunning,
	}
	store.Put(first)

	got, ok := store.Get(42)
	if !ok {
		t.Fatal("build not found after Put")
	}
	if got.ID != first.ID {
		t.Errorf("ID = %s, want %s", got.ID, first.ID)
	}

	second := first
	second.ID = uuid.New()
	second.Config.Notes = "second run"
	store.Put(second)

	got, ok = store.Get(42)
	if !ok {
		t.Fatal("build not found after overwrite")
	}
	if got.ID != second.ID {
		t.Error("Put must overwrite the previous build for the user")
	}
	if got.Config.Notes != "second run" {
		t.Errorf("Notes = %q", got.Config.Notes)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	store.Put(ActiveBuild{ID: uuid.New(), UserID: 1, Status: StatusRunning})
	store.Put(ActiveBuild{ID: uuid.New(), UserID: 2, Status: StatusRunning})

	if _, ok := store.Get(3); ok {
		t.Error("unknown user must not see a build")
	}
	if all := store.All(); len(all) != 2 {
		t.Errorf("All() = %d builds, want 2", len(all))
	}
}
