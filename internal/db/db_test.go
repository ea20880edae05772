package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenAppliesPragmasToEveryConnection(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "db-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	first, err := database.Connx(ctx)
	if err != nil {
		t.Fatalf("acquire first connection: %v", err)
	}
	defer first.Close()
	second, err := database.Connx(ctx)
	if err != nil {
		t.Fatalf("acquire second connection: %v", err)
	}
	defer second.Close()

	for i, conn := range []interface {
		GetContext(context.Context, any, string, ...any) error
	}{first, second} {
		var foreignKeys, busyTimeout int
		var journalMode string
		if err := conn.GetContext(ctx, &foreignKeys, `PRAGMA foreign_keys`); err != nil {
			t.Fatalf("read foreign_keys (conn=%d): %v", i, err)
		}
		if err := conn.GetContext(ctx, &busyTimeout, `PRAGMA busy_timeout`); err != nil {
			t.Fatalf("read busy_timeout (conn=%d): %v", i, err)
		}
		if err := conn.GetContext(ctx, &journalMode, `PRAGMA journal_mode`); err != nil {
			t.Fatalf("read journal_mode (conn=%d): %v", i, err)
		}
		if foreignKeys != 1 || busyTimeout != 5000 || journalMode != "wal" {
			t.Fatalf("unexpected pragmas on conn %d: foreign_keys=%d busy_timeout=%d journal_mode=%s", i, foreignKeys, busyTimeout, journalMode)
		}
	}
}

func TestDSNAppendsPragmas(t *testing.T) {
	got := dsn("file.db?cache=shared")
	want := "file.db?cache=shared&_pragma=journal_mode%28WAL%29&_pragma=foreign_keys%28ON%29&_pragma=busy_timeout%285000%29&_txlock=immediate"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
