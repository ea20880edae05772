package migrations

import (
	"path/filepath"
	"testing"

	"github.com/Simplici0/costsheet/internal/db"
)

func TestUpIsRepeatable(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "migrate-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	for i := 0; i < 2; i++ {
		if err := Up(database.DB); err != nil {
			t.Fatalf("run migrations (iteration=%d): %v", i, err)
		}
	}

	version, err := Version(database.DB)
	if err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected schema version 2, got %d", version)
	}

	for _, table := range []string{"rate_tables", "proposals"} {
		var count int
		if err := database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table); err != nil {
			t.Fatalf("inspect schema: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}
