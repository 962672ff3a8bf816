package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/storage/storagetest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "dungeon.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return openTempStore(t)
	})
}

func TestReopenKeepsSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeon.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	want := storagetest.NewPlayer(t, "persist-1", "Dara", 3, 70)
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(context.Background(), "persist-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := storagetest.Equal(got, want); err != nil {
		t.Fatal(err)
	}
}

func TestSaveRecordsBattleFlag(t *testing.T) {
	store := openTempStore(t)
	p := storagetest.NewPlayer(t, "flag-1", "Eli", 1, 0)
	if err := store.Save(context.Background(), p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var inBattle bool
	if err := store.sqlDB.QueryRow(`SELECT in_battle FROM players WHERE id = ?`, "flag-1").Scan(&inBattle); err != nil {
		t.Fatalf("query in_battle: %v", err)
	}
	if inBattle {
		t.Error("in_battle = true for a player without a monster")
	}
}
