package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/costsheet/internal/costsheet"
)

// Rate sources.
const (
	SourcePreset = "preset"
	SourceStored = "stored"
)

// RateRecord is the active rate table of a regime.
type RateRecord struct {
	Regime    costsheet.Regime    `json:"regime"`
	Rates     costsheet.RateTable `json:"rates"`
	Source    string              `json:"source"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
}

type rateRow struct {
	Regime    string `db:"regime"`
	RatesJSON string `db:"rates_json"`
	UpdatedAt string `db:"updated_at"`
}

// RateStore keeps one editable rate table per regime. Regimes without a stored row fall
// back to their preset.
type RateStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRateStore(db *sqlx.DB) *RateStore {
	return &RateStore{db: db, now: time.Now}
}

// Active returns the stored table of regime, or its preset when none is stored.
func (s *RateStore) Active(ctx context.Context, regime costsheet.Regime) (RateRecord, error) {
	return activeRates(ctx, s.db, regime)
}

// Put replaces the stored table of regime.
func (s *RateStore) Put(ctx context.Context, regime costsheet.Regime, rates costsheet.RateTable) (RateRecord, error) {
	return upsertRates(ctx, s.db, regime, rates, s.now())
}

// Update applies fn to the active table and stores the result in a single transaction.
// An error from fn aborts the update and is returned unchanged.
func (s *RateStore) Update(ctx context.Context, regime costsheet.Regime, fn func(costsheet.RateTable) (costsheet.RateTable, error)) (RateRecord, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return RateRecord{}, fmt.Errorf("begin rate update transaction: %w", err)
	}

	current, err := activeRates(ctx, tx, regime)
	if err != nil {
		_ = tx.Rollback()
		return RateRecord{}, err
	}

	next, err := fn(current.Rates)
	if err != nil {
		_ = tx.Rollback()
		return RateRecord{}, err
	}

	record, err := upsertRates(ctx, tx, regime, next, s.now())
	if err != nil {
		_ = tx.Rollback()
		return RateRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return RateRecord{}, fmt.Errorf("commit rate update transaction: %w", err)
	}
	return record, nil
}

// Reset overwrites the stored table of regime with its preset.
func (s *RateStore) Reset(ctx context.Context, regime costsheet.Regime) (RateRecord, error) {
	preset, err := costsheet.PresetFor(regime)
	if err != nil {
		return RateRecord{}, err
	}
	return s.Put(ctx, regime, preset)
}

func activeRates(ctx context.Context, q sqlx.QueryerContext, regime costsheet.Regime) (RateRecord, error) {
	preset, err := costsheet.PresetFor(regime)
	if err != nil {
		return RateRecord{}, err
	}

	var row rateRow
	err = sqlx.GetContext(ctx, q, &row, `
		SELECT regime, rates_json, updated_at
		FROM rate_tables
		WHERE regime = ?
	`, string(regime))
	if errors.Is(err, sql.ErrNoRows) {
		return RateRecord{Regime: regime, Rates: preset, Source: SourcePreset}, nil
	}
	if err != nil {
		return RateRecord{}, fmt.Errorf("query rate table %q: %w", regime, err)
	}

	rates, err := DecodeRates(row.RatesJSON, preset)
	if err != nil {
		return RateRecord{}, err
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return RateRecord{}, err
	}

	return RateRecord{Regime: regime, Rates: rates, Source: SourceStored, UpdatedAt: &updatedAt}, nil
}

func upsertRates(ctx context.Context, e sqlx.ExecerContext, regime costsheet.Regime, rates costsheet.RateTable, now time.Time) (RateRecord, error) {
	raw, err := EncodeRates(rates)
	if err != nil {
		return RateRecord{}, err
	}

	stamp := FormatTime(now)
	if _, err := e.ExecContext(ctx, `
		INSERT INTO rate_tables (regime, rates_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(regime) DO UPDATE SET
			rates_json = excluded.rates_json,
			updated_at = excluded.updated_at
	`, string(regime), raw, stamp); err != nil {
		return RateRecord{}, fmt.Errorf("upsert rate table %q: %w", regime, err)
	}

	updatedAt, _ := parseTime(stamp)
	return RateRecord{Regime: regime, Rates: rates, Source: SourceStored, UpdatedAt: &updatedAt}, nil
}

// EncodeRates serializes a rate table for storage.
func EncodeRates(rates costsheet.RateTable) (string, error) {
	raw, err := json.Marshal(rates)
	if err != nil {
		return "", fmt.Errorf("encode rate table: %w", err)
	}
	return string(raw), nil
}

// DecodeRates reads a stored rate table on top of base. Keys missing from raw keep the
// value they have in base.
func DecodeRates(raw string, base costsheet.RateTable) (costsheet.RateTable, error) {
	out := base
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return costsheet.RateTable{}, fmt.Errorf("decode rate table: %w", err)
	}
	return out, nil
}
