// Package store persists parsed days, their intervals and the category
// hierarchy in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/daylog/internal/day"
	"github.com/papapumpkin/daylog/internal/hierarchy"
)

// schema is executed on every open.
const schema = `
CREATE TABLE IF NOT EXISTS days (
    date       TEXT PRIMARY KEY,
    status     TEXT NOT NULL,
    remark     TEXT NOT NULL DEFAULT '',
    getup_time TEXT
);

CREATE TABLE IF NOT EXISTS time_records (
    date         TEXT NOT NULL,
    start        TEXT NOT NULL,
    "end"        TEXT NOT NULL,
    project_path TEXT NOT NULL,
    duration     INTEGER NOT NULL,
    PRIMARY KEY (date, start),
    FOREIGN KEY (date) REFERENCES days(date)
);

CREATE TABLE IF NOT EXISTS parent_child (
    child  TEXT PRIMARY KEY,
    parent TEXT NOT NULL
);
`

// Store is a SQLite-backed day store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, enables WAL mode and a busy
// timeout, and creates the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite has a single writer; one pooled connection keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDays upserts records and their intervals and adds hierarchy edges in a
// single transaction. An interval replaces a stored one with the same date
// and start; an existing hierarchy edge is never overwritten.
func (s *Store) SaveDays(ctx context.Context, records []day.Record, edges []hierarchy.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsertDay = `
		INSERT INTO days (date, status, remark, getup_time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			status     = excluded.status,
			remark     = excluded.remark,
			getup_time = excluded.getup_time`
	const upsertInterval = `
		INSERT INTO time_records (date, start, "end", project_path, duration)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date, start) DO UPDATE SET
			"end"        = excluded."end",
			project_path = excluded.project_path,
			duration     = excluded.duration`
	const insertEdge = `INSERT OR IGNORE INTO parent_child (child, parent) VALUES (?, ?)`

	dayStmt, err := tx.PrepareContext(ctx, upsertDay)
	if err != nil {
		return fmt.Errorf("store: prepare day upsert: %w", err)
	}
	defer dayStmt.Close()
	ivStmt, err := tx.PrepareContext(ctx, upsertInterval)
	if err != nil {
		return fmt.Errorf("store: prepare interval upsert: %w", err)
	}
	defer ivStmt.Close()

	for _, r := range records {
		if _, err := dayStmt.ExecContext(ctx, r.Date, statusText(r.Status), r.Remark, nullable(r.Getup)); err != nil {
			return fmt.Errorf("store: save day %s: %w", r.Date, err)
		}
		for _, a := range r.Activities {
			if _, err := ivStmt.ExecContext(ctx, r.Date, a.Start, a.End, a.Label, a.Duration); err != nil {
				return fmt.Errorf("store: save interval %s %s: %w", r.Date, a.Start, err)
			}
		}
	}

	for _, e := range edges {
		if _, err := tx.ExecContext(ctx, insertEdge, e.Child, e.Parent); err != nil {
			return fmt.Errorf("store: save hierarchy edge %q: %w", e.Child, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// ParentMap returns every stored hierarchy edge ordered by child.
func (s *Store) ParentMap(ctx context.Context) ([]hierarchy.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT child, parent FROM parent_child ORDER BY child")
	if err != nil {
		return nil, fmt.Errorf("store: query hierarchy: %w", err)
	}
	defer rows.Close()

	var out []hierarchy.Entry
	for rows.Next() {
		var e hierarchy.Entry
		if err := rows.Scan(&e.Child, &e.Parent); err != nil {
			return nil, fmt.Errorf("store: scan hierarchy: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Day returns the stored record for date with intervals ordered by start.
func (s *Store) Day(ctx context.Context, date string) (day.Record, error) {
	recs, err := s.Range(ctx, date, date)
	if err != nil {
		return day.Record{}, err
	}
	if len(recs) == 0 {
		return day.Record{}, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	return recs[0], nil
}

// Range returns the stored records with from <= date <= to, ordered by date,
// each with intervals ordered by start.
func (s *Store) Range(ctx context.Context, from, to string) ([]day.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, status, remark, getup_time FROM days
		WHERE date BETWEEN ? AND ? ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("store: query days: %w", err)
	}
	var out []day.Record
	index := make(map[string]int)
	for rows.Next() {
		var (
			r      day.Record
			status string
			getup  sql.NullString
		)
		if err := rows.Scan(&r.Date, &status, &r.Remark, &getup); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan day: %w", err)
		}
		r.Status = status == statusText(true)
		r.Getup = getup.String
		index[r.Date] = len(out)
		out = append(out, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate days: %w", err)
	}

	ivRows, err := s.db.QueryContext(ctx, `
		SELECT date, start, "end", project_path, duration FROM time_records
		WHERE date BETWEEN ? AND ? ORDER BY date, start`, from, to)
	if err != nil {
		return nil, fmt.Errorf("store: query intervals: %w", err)
	}
	defer ivRows.Close()
	for ivRows.Next() {
		var (
			date string
			a    day.Interval
		)
		if err := ivRows.Scan(&date, &a.Start, &a.End, &a.Label, &a.Duration); err != nil {
			return nil, fmt.Errorf("store: scan interval: %w", err)
		}
		i, ok := index[date]
		if !ok {
			continue
		}
		out[i].Activities = append(out[i].Activities, a)
	}
	if err := ivRows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate intervals: %w", err)
	}
	return out, nil
}

// Exists reports whether date is stored.
func (s *Store) Exists(ctx context.Context, date string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM days WHERE date = ?", date).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: check day %s: %w", date, err)
	}
	return true, nil
}

func statusText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
