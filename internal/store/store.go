// Package store persists rate tables and proposal snapshots in SQLite.
package store

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Fixed width so that lexical order is chronological order.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTime renders t the way timestamps are stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", raw, err)
	}
	return t, nil
}
