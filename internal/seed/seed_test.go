package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/costsheet/internal/costsheet"
	"github.com/Simplici0/costsheet/internal/db"
	"github.com/Simplici0/costsheet/internal/migrations"
	"github.com/Simplici0/costsheet/internal/store"
)

func newSeedTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database.DB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := newSeedTestDB(t)

	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 3 {
				t.Fatalf("expected 3 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no changes in iteration %d, got %+v", i, stats)
		}
	}

	var count int
	if err := database.Get(&count, `SELECT COUNT(*) FROM rate_tables`); err != nil {
		t.Fatalf("count rate tables: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rate tables, got %d", count)
	}

	record, err := store.NewRateStore(database).Active(ctx, costsheet.RegimeSimplified)
	if err != nil {
		t.Fatalf("load simplified rates: %v", err)
	}
	if record.Source != store.SourceStored {
		t.Fatalf("expected stored simplified rates, got %q", record.Source)
	}
	if !record.Rates.ISS.Equal(costsheet.SimplifiedRates().ISS) {
		t.Fatalf("expected seeded ISS %s, got %s", costsheet.SimplifiedRates().ISS, record.Rates.ISS)
	}
}

func TestRunKeepsEditedRatesAndBackfillsMissingKeys(t *testing.T) {
	ctx := context.Background()
	database := newSeedTestDB(t)

	if _, err := database.Exec(`
		INSERT INTO rate_tables (regime, rates_json, updated_at)
		VALUES (?, ?, ?)
	`, string(costsheet.RegimeRealProfit), `{"m6_iss": "0.03"}`, "2025-01-01T00:00:00.000000Z"); err != nil {
		t.Fatalf("insert partial rate table: %v", err)
	}

	stats, err := Run(ctx, database)
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 2 || stats.Updates != 1 {
		t.Fatalf("expected 2 inserts and 1 update, got %+v", stats)
	}

	record, err := store.NewRateStore(database).Active(ctx, costsheet.RegimeRealProfit)
	if err != nil {
		t.Fatalf("load real profit rates: %v", err)
	}
	if record.Rates.ISS.String() != "0.03" {
		t.Fatalf("expected edited ISS to survive, got %s", record.Rates.ISS)
	}
	if !record.Rates.FGTS.Equal(costsheet.RealProfitRates().FGTS) {
		t.Fatalf("expected FGTS backfilled from preset, got %s", record.Rates.FGTS)
	}

	stats, err = Run(ctx, database)
	if err != nil {
		t.Fatalf("rerun seed: %v", err)
	}
	if stats != (Stats{}) {
		t.Fatalf("expected no changes on rerun, got %+v", stats)
	}
}
