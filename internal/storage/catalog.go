package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when no catalogued run matches a query.
var ErrNotFound = errors.New("storage: no matching run")

// Catalog indexes saved runs in SQLite so sweeps can be queried without
// reading every run directory.
type Catalog struct {
	db *sql.DB
}

// CatalogEntry is one indexed run.
type CatalogEntry struct {
	ID           string
	Name         string
	CreatedAt    time.Time
	Volume       float64
	VentArea     float64
	InjectedMass float64
	Closure      string
	PeakPressure float64
	ClampedSteps int
}

func OpenCatalog(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			volume REAL NOT NULL,
			vent_area REAL NOT NULL,
			injected_mass REAL NOT NULL,
			closure TEXT NOT NULL,
			peak_pressure REAL NOT NULL,
			clamped_steps INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_vent_area ON runs(vent_area);`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record upserts the index row for a saved run.
func (c *Catalog) Record(ctx context.Context, meta *RunMetadata) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, created_at, volume, vent_area, injected_mass, closure, peak_pressure, clamped_steps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			peak_pressure = excluded.peak_pressure,
			clamped_steps = excluded.clamped_steps`,
		meta.ID,
		meta.Name,
		meta.Timestamp.UTC().Format(time.RFC3339Nano),
		meta.Params.Volume,
		meta.Params.VentArea,
		meta.Params.InjectedMass,
		meta.Params.Closure.String(),
		meta.PeakPressure,
		meta.ClampedSteps,
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", meta.ID, err)
	}
	return nil
}

// Recent returns up to n runs, newest first.
func (c *Catalog) Recent(ctx context.Context, n int) ([]CatalogEntry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, created_at, volume, vent_area, injected_mass, closure, peak_pressure, clamped_steps
		 FROM runs ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]CatalogEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SmallestVentUnder returns the run with the smallest vent area whose peak
// stayed at or below limit (Pa).
func (c *Catalog) SmallestVentUnder(ctx context.Context, name string, limit float64) (CatalogEntry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, volume, vent_area, injected_mass, closure, peak_pressure, clamped_steps
		 FROM runs WHERE name = ? AND peak_pressure <= ?
		 ORDER BY vent_area ASC, peak_pressure ASC LIMIT 1`, name, limit)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return CatalogEntry{}, ErrNotFound
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (CatalogEntry, error) {
	var e CatalogEntry
	var created string
	if err := s.Scan(&e.ID, &e.Name, &created, &e.Volume, &e.VentArea, &e.InjectedMass, &e.Closure, &e.PeakPressure, &e.ClampedSteps); err != nil {
		return CatalogEntry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return CatalogEntry{}, err
	}
	e.CreatedAt = t
	return e, nil
}
