// Package storage provides SQLite-based persistence for run history.
//
// Every batch operation (generate, verify, remove) can be recorded as a
// run with per-file outcomes, so `codemap status` and the get_status MCP
// tool can answer "what happened last time" without re-scanning anything.
//
// # Database Schema
//
// Tables:
//   - runs: one row per batch operation (id, operation, counters)
//   - run_files: per-file outcome within a run (succeeded/skipped/failed)
//   - schema_version: applied migration versions
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStore("~/.codemap/history.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.RecordRun(ctx, &storage.Run{
//	    ID:        uuid.NewString(),
//	    Operation: storage.OpGenerate,
//	    StartedAt: start,
//	    Duration:  time.Since(start),
//	    Succeeded: 12,
//	}, files)
//
// # Build Modes
//
// Two SQLite drivers are supported through build tags. The default build
// uses the pure Go modernc.org/sqlite driver and needs no C toolchain;
// building with -tags cgo_sqlite switches to github.com/mattn/go-sqlite3.
// Both modes share the same schema and behavior.
//
// The database is opened in WAL mode with a single writer connection.
// Recording is best effort by callers: history failures should never
// fail the file operation that produced them.
package storage
