package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zapponejosh/paschalion/internal/calendar"
)

const paschalionColumns = `year, orthodox_julian, orthodox_gregorian, catholic_gregorian, generated_at`

// SavePaschalion upserts entries in a single transaction. A year that is
// already stored is overwritten.
func (db *DB) SavePaschalion(ctx context.Context, entries []PaschalionEntry) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO paschalion (`+paschalionColumns+`)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(year) DO UPDATE SET
				orthodox_julian = excluded.orthodox_julian,
				orthodox_gregorian = excluded.orthodox_gregorian,
				catholic_gregorian = excluded.catholic_gregorian,
				generated_at = excluded.generated_at
		`)
		if err != nil {
			return fmt.Errorf("prepare paschalion upsert: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			generated := e.GeneratedAt
			if generated.IsZero() {
				generated = time.Now()
			}
			if _, err := stmt.ExecContext(ctx,
				e.Year,
				e.OrthodoxJulian.String(),
				e.OrthodoxGregorian.String(),
				e.CatholicGregorian.String(),
				generated.UTC().Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("upsert paschalion %d: %w", e.Year, err)
			}
		}
		return nil
	})
}

// GetPaschalion returns the stored entry for a year, or ErrNotFound.
func (db *DB) GetPaschalion(ctx context.Context, year int) (*PaschalionEntry, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+paschalionColumns+` FROM paschalion WHERE year = ?`, year)

	entry, err := scanPaschalion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query paschalion %d: %w", year, err)
	}
	return entry, nil
}

// ListPaschalion returns stored entries with from <= year <= to, ordered by
// year. Missing years are simply absent.
func (db *DB) ListPaschalion(ctx context.Context, from, to int) ([]PaschalionEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+paschalionColumns+` FROM paschalion
		WHERE year BETWEEN ? AND ?
		ORDER BY year`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query paschalion range: %w", err)
	}
	defer rows.Close()

	entries := []PaschalionEntry{}
	for rows.Next() {
		entry, err := scanPaschalion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan paschalion: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paschalion: %w", err)
	}
	return entries, nil
}

// PaschalionStats reports how many years are stored and their bounds.
func (db *DB) PaschalionStats(ctx context.Context) (*PaschalionStats, error) {
	var stats PaschalionStats
	var first, last sql.NullInt64

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(year), MAX(year) FROM paschalion`,
	).Scan(&stats.Rows, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("query paschalion stats: %w", err)
	}

	if first.Valid {
		y := int(first.Int64)
		stats.FirstYear = &y
	}
	if last.Valid {
		y := int(last.Int64)
		stats.LastYear = &y
	}
	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaschalion(s rowScanner) (*PaschalionEntry, error) {
	var (
		e                                PaschalionEntry
		julian, gregorian, catholic, gen string
	)
	if err := s.Scan(&e.Year, &julian, &gregorian, &catholic, &gen); err != nil {
		return nil, err
	}

	var err error
	if e.OrthodoxJulian, err = calendar.ParseDate(julian); err != nil {
		return nil, fmt.Errorf("orthodox_julian: %w", err)
	}
	if e.OrthodoxGregorian, err = calendar.ParseDate(gregorian); err != nil {
		return nil, fmt.Errorf("orthodox_gregorian: %w", err)
	}
	if e.CatholicGregorian, err = calendar.ParseDate(catholic); err != nil {
		return nil, fmt.Errorf("catholic_gregorian: %w", err)
	}
	e.GeneratedAt = parseTimestamp(gen)
	return &e, nil
}

// parseTimestamp accepts RFC 3339 and SQLite's datetime('now') format.
// Unparseable values yield the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
