package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/costsheet/internal/costsheet"
	"github.com/Simplici0/costsheet/internal/store"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run stores the preset of every regime that has no rate table yet, and fills in keys
// missing from existing tables. It is idempotent.
func Run(ctx context.Context, db *sqlx.DB) (Stats, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	now := store.FormatTime(time.Now())

	for _, regime := range costsheet.Regimes() {
		if err := ensureRateTable(ctx, tx, regime, now, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRateTable(ctx context.Context, tx *sqlx.Tx, regime costsheet.Regime, now string, stats *Stats) error {
	preset, err := costsheet.PresetFor(regime)
	if err != nil {
		return err
	}

	var stored string
	err = tx.GetContext(ctx, &stored, `SELECT rates_json FROM rate_tables WHERE regime = ?`, string(regime))
	if errors.Is(err, sql.ErrNoRows) {
		raw, err := store.EncodeRates(preset)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rate_tables (regime, rates_json, updated_at)
			VALUES (?, ?, ?)
		`, string(regime), raw, now); err != nil {
			return fmt.Errorf("insert rate table %q: %w", regime, err)
		}
		stats.Inserts++
		return nil
	}
	if err != nil {
		return fmt.Errorf("check rate table %q: %w", regime, err)
	}

	missing, err := missingKeys(stored)
	if err != nil {
		return fmt.Errorf("inspect rate table %q: %w", regime, err)
	}
	if !missing {
		return nil
	}

	rates, err := store.DecodeRates(stored, preset)
	if err != nil {
		return err
	}
	raw, err := store.EncodeRates(rates)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE rate_tables
		SET rates_json = ?, updated_at = ?
		WHERE regime = ?
	`, raw, now, string(regime)); err != nil {
		return fmt.Errorf("backfill rate table %q: %w", regime, err)
	}
	stats.Updates++
	return nil
}

func missingKeys(raw string) (bool, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return false, err
	}
	for _, key := range costsheet.RateKeys() {
		if _, ok := keys[key]; !ok {
			return true, nil
		}
	}
	return false, nil
}
