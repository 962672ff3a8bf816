package yamlstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		s, err := Open(filepath.Join(t.TempDir(), ".saves"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		return s
	})
}

func TestSaveWritesReadableYAML(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Save(context.Background(), storagetest.NewPlayer(t, "abc", "Fen", 2, 30)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc.yaml"))
	if err != nil {
		t.Fatalf("read save: %v", err)
	}
	for _, want := range []string{"name: Fen", "level: 2", "exp: 30", "healing_potion: 2"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("save file missing %q:\n%s", want, data)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the save", len(entries))
	}
}

func TestRejectsPathLikeIDs(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, id := range []string{"../escape", "a/b", ".hidden"} {
		if _, err := s.Load(context.Background(), id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Load(%q) error = %v, want ErrNotFound", id, err)
		}
		p := storagetest.NewPlayer(t, id, "x", 1, 0)
		if err := s.Save(context.Background(), p); err == nil {
			t.Errorf("Save(%q) should fail", id)
		}
	}
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected empty dir error")
	}
}
