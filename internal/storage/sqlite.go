package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when a requested entity doesn't exist
var ErrNotFound = errors.New("not found")

// DefaultRecentLimit is used when ListRecentRuns gets a non-positive limit
const DefaultRecentLimit = 10

// SQLiteStore implements the RunStore interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStore opens (creating if necessary) the run history database
// at dbPath and applies any pending migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordRun stores the run and its per-file results in one transaction
func (s *SQLiteStore) RecordRun(ctx context.Context, run *Run, files []RunFile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, operation, started_at, duration_ms, succeeded, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Operation, run.StartedAt.UTC(), run.Duration.Milliseconds(),
		run.Succeeded, run.Skipped, run.Failed)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	for i := range files {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO run_files (run_id, file_path, outcome, detail)
			VALUES (?, ?, ?, ?)
		`, run.ID, files[i].FilePath, files[i].Outcome, files[i].Detail)
		if err != nil {
			return fmt.Errorf("failed to record run file: %w", err)
		}
		if id, err := result.LastInsertId(); err == nil {
			files[i].ID = id
			files[i].RunID = run.ID
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun returns a run by ID
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, operation, started_at, duration_ms, succeeded, skipped, failed
		FROM runs
		WHERE id = ?
	`, id)
	return scanRun(row)
}

// ListRecentRuns returns up to limit runs, newest first
func (s *SQLiteStore) ListRecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation, started_at, duration_ms, succeeded, skipped, failed
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListRunFiles returns the per-file results of a run in recorded order
func (s *SQLiteStore) ListRunFiles(ctx context.Context, runID string) ([]*RunFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, file_path, outcome, detail
		FROM run_files
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []*RunFile
	for rows.Next() {
		var f RunFile
		var detail sql.NullString
		if err := rows.Scan(&f.ID, &f.RunID, &f.FilePath, &f.Outcome, &detail); err != nil {
			return nil, err
		}
		f.Detail = detail.String
		files = append(files, &f)
	}
	return files, rows.Err()
}

// LastRunForFile returns the newest run touching filePath and the
// file's result within it
func (s *SQLiteStore) LastRunForFile(ctx context.Context, filePath string) (*Run, *RunFile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.operation, r.started_at, r.duration_ms, r.succeeded, r.skipped, r.failed,
		       f.id, f.run_id, f.file_path, f.outcome, f.detail
		FROM run_files f
		JOIN runs r ON r.id = f.run_id
		WHERE f.file_path = ?
		ORDER BY r.started_at DESC, f.id DESC
		LIMIT 1
	`, filePath)

	var run Run
	var file RunFile
	var durationMS int64
	var detail sql.NullString
	err := row.Scan(
		&run.ID, &run.Operation, &run.StartedAt, &durationMS,
		&run.Succeeded, &run.Skipped, &run.Failed,
		&file.ID, &file.RunID, &file.FilePath, &file.Outcome, &detail,
	)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	file.Detail = detail.String
	return &run, &file, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var durationMS int64
	err := row.Scan(
		&run.ID, &run.Operation, &run.StartedAt, &durationMS,
		&run.Succeeded, &run.Skipped, &run.Failed,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
