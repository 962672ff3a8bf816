package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	dsn := os.Getenv("DUNGEONCRAWL_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DUNGEONCRAWL_TEST_POSTGRES_DSN not set")
	}

	storagetest.Run(t, func(t *testing.T) storage.Store {
		s, err := Open(context.Background(), dsn)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := s.Reset(context.Background()); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestOpenRequiresDSN(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected empty dsn error")
	}
}
