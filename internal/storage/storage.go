package storage

import (
	"context"
	"time"
)

// Operation names recorded for runs
const (
	OpGenerate = "generate"
	OpVerify   = "verify"
	OpRemove   = "remove"
)

// Per-file outcomes within a run
const (
	OutcomeSucceeded = "succeeded"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// RunStore defines the interface for persisting run history
type RunStore interface {
	// RecordRun stores a completed run and its per-file results atomically
	RecordRun(ctx context.Context, run *Run, files []RunFile) error

	// GetRun returns a run by ID, or ErrNotFound
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRecentRuns returns the most recent runs, newest first
	ListRecentRuns(ctx context.Context, limit int) ([]*Run, error)

	// ListRunFiles returns the per-file results of a run in recorded order
	ListRunFiles(ctx context.Context, runID string) ([]*RunFile, error)

	// LastRunForFile returns the most recent run that touched the given
	// file, along with that file's result, or ErrNotFound
	LastRunForFile(ctx context.Context, filePath string) (*Run, *RunFile, error)

	// Close releases the underlying database
	Close() error
}

// Run represents one batch operation over a set of files
type Run struct {
	ID        string
	Operation string
	StartedAt time.Time
	Duration  time.Duration
	Succeeded int
	Skipped   int
	Failed    int
}

// TotalFiles returns how many files the run touched
func (r *Run) TotalFiles() int {
	return r.Succeeded + r.Skipped + r.Failed
}

// RunFile represents the outcome for a single file within a run
type RunFile struct {
	ID       int64
	RunID    string
	FilePath string
	Outcome  string
	Detail   string
}
