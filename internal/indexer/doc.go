// Package indexer coordinates section resolution and index block
// maintenance across files.
//
// The indexer ties the lower layers together: the resolver computes
// sections, the indexblock package renders and splices the embedded
// comment block, and the verifier checks stored blocks for drift. On
// top of that it offers batch variants with a bounded worker pool and
// optional run history recording.
//
// # Basic Usage
//
//	idx := indexer.New(language.NewRegistry(), &indexer.Config{
//	    Workers: 8,
//	})
//
//	index, err := idx.Generate("internal/server/server.go")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("indexed %d sections\n", len(index.Sections))
//
// # Writing the Block
//
// Generate runs two resolution passes. Inserting or resizing the block
// shifts every line below it, which would immediately invalidate the
// line numbers just written. The first pass establishes the section
// count, the second re-resolves the shifted content and rewrites the
// block in place, so the stored numbers match the file as written.
//
// # Batch Operations
//
// Discover walks a tree for supported files; GenerateAll, VerifyAll,
// and RemoveAll process many files concurrently:
//
//	stats, err := idx.GenerateAll(ctx, paths)
//	// err only returned for context cancellation
//
//	fmt.Printf("%d succeeded, %d skipped, %d failed in %v\n",
//	    stats.Succeeded, stats.Skipped, stats.Failed, stats.Duration)
//
// A single bad file never aborts the batch. Files that cannot be
// processed at all (unsupported language, missing, unreadable) count as
// skipped; files where processing was attempted and went wrong (write
// error, failed verification) count as failed, with the reasons
// collected in Statistics.ErrorMessages.
//
// # Run History
//
// When Config.Store is set, every batch is recorded with its per-file
// outcomes. Recording is best effort and never fails the batch.
package indexer
