package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"rss_digest/internal/model"
	"rss_digest/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

const lastRunKey = "last_run_utc"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads the full seen store into memory.
func (s *SQLite) Load(ctx context.Context) (*model.SeenState, error) {
	state := model.NewSeenState()

	rows, err := s.db.QueryContext(ctx,
		`SELECT url, title, source, first_seen_at FROM seen_urls`,
	)
	if err != nil {
		return nil, fmt.Errorf("query seen urls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var url, title, source, firstSeen string
		if err := rows.Scan(&url, &title, &source, &firstSeen); err != nil {
			return nil, fmt.Errorf("scan seen url: %w", err)
		}
		rec := model.SeenRecord{Title: title, Source: source}
		rec.FirstSeen, _ = time.Parse(timeLayout, firstSeen)
		state.SeenURLs[url] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seen urls: %w", err)
	}

	var lastRun sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM run_meta WHERE key = ?`, lastRunKey,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	if lastRun.Valid {
		if t, err := time.Parse(timeLayout, lastRun.String); err == nil {
			state.LastRun = &t
		}
	}

	return state, nil
}

// Save replaces the persisted store with the given state in one
// transaction, mirroring the whole-document write of a state file.
func (s *SQLite) Save(ctx context.Context, state *model.SeenState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM seen_urls`); err != nil {
		return fmt.Errorf("clear seen urls: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO seen_urls (url, title, source, first_seen_at) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for url, rec := range state.SeenURLs {
		_, err := stmt.ExecContext(ctx,
			url, rec.Title, rec.Source, rec.FirstSeen.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert seen url %s: %w", url, err)
		}
	}

	if state.LastRun != nil {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			lastRunKey, state.LastRun.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("save last run: %w", err)
		}
	}

	return tx.Commit()
}
