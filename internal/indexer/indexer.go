package indexer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"codemap/internal/indexblock"
	"codemap/internal/language"
	"codemap/internal/resolver"
	"codemap/internal/storage"
	"codemap/internal/verifier"
	"codemap/pkg/types"
)

// Indexer coordinates section resolution and index block maintenance
// across files: resolve -> render -> write, plus verify and remove.
type Indexer struct {
	registry *language.Registry
	resolver *resolver.Resolver
	verifier *verifier.Verifier
	store    storage.RunStore

	// Worker pool configuration
	workers int
}

// Config contains configuration for the indexer
type Config struct {
	Workers        int              // Number of concurrent workers (default: runtime.NumCPU())
	DriftTolerance int              // Allowed line drift before verify flags it (default: verifier.DefaultDriftTolerance)
	Store          storage.RunStore // Optional run history; nil disables recording
}

// Statistics contains statistics about a batch operation
type Statistics struct {
	Succeeded     int
	Skipped       int
	Failed        int
	Duration      time.Duration
	ErrorMessages []string

	// Files holds the per-file outcomes in input order
	Files []storage.RunFile
}

// SectionContent is the text of one resolved section
type SectionContent struct {
	FilePath string `json:"file_path"`
	Name     string `json:"name"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Text     string `json:"text"`
}

// New creates a new Indexer instance
func New(registry *language.Registry, config *Config) *Indexer {
	if config == nil {
		config = &Config{}
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Indexer{
		registry: registry,
		resolver: resolver.New(registry),
		verifier: verifier.New(registry, config.DriftTolerance),
		store:    config.Store,
		workers:  workers,
	}
}

// Resolve computes the current index for a file without touching it
func (idx *Indexer) Resolve(filePath string) (*types.Index, error) {
	return idx.resolver.Resolve(filePath)
}

// Verify checks the file's stored index block against its current content
func (idx *Indexer) Verify(filePath string) (*types.VerifyResult, error) {
	return idx.verifier.Verify(filePath)
}

// Generate creates or replaces the index block in filePath and returns
// the index that was embedded. Files whose extension has no language
// profile are refused with types.ErrUnsupportedLanguage.
func (idx *Indexer) Generate(filePath string) (*types.Index, error) {
	profile, ok := idx.registry.Resolve(filePath)
	if !ok {
		return nil, fmt.Errorf("%s: %w", filePath, types.ErrUnsupportedLanguage)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filePath, err)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}

	return idx.generate(filePath, string(data), profile, info.Mode().Perm())
}

// generate runs two resolution passes. The first renders a block against
// the file as it stands; inserting or resizing that block shifts every
// following line, so a second pass re-resolves the shifted content and
// rewrites the block in place. The block's line count depends only on
// the section count, which both passes share, so the second render lands
// on the final positions exactly.
func (idx *Indexer) generate(filePath, content string, profile *language.Profile, mode os.FileMode) (*types.Index, error) {
	now := time.Now().UTC()

	first := idx.resolver.ResolveContent(filePath, content)
	var span *indexblock.Span
	if existing, ok := indexblock.Parse(content); ok {
		span = &existing.Span
	}
	interim := indexblock.Upsert(content,
		indexblock.Render(first.Sections, first.TotalLines, profile.LineComment, now), span)

	final := idx.resolver.ResolveContent(filePath, interim)
	final.GeneratedAt = now
	placed, ok := indexblock.Parse(interim)
	if !ok {
		return nil, fmt.Errorf("index block not found after insert in %s", filePath)
	}
	updated := indexblock.Upsert(interim,
		indexblock.Render(final.Sections, final.TotalLines, profile.LineComment, now), &placed.Span)

	if err := os.WriteFile(filePath, []byte(updated), mode); err != nil {
		return nil, fmt.Errorf("write %s: %w", filePath, err)
	}
	return final, nil
}

// Remove deletes the index block from filePath. Returns an error
// wrapping types.ErrNoIndex when the file has no block.
func (idx *Indexer) Remove(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filePath, err)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	return idx.remove(filePath, string(data), info.Mode().Perm())
}

func (idx *Indexer) remove(filePath, content string, mode os.FileMode) error {
	block, ok := indexblock.Parse(content)
	if !ok {
		return fmt.Errorf("%s: %w", filePath, types.ErrNoIndex)
	}
	cleaned := indexblock.Remove(content, block.Span)
	if err := os.WriteFile(filePath, []byte(cleaned), mode); err != nil {
		return fmt.Errorf("write %s: %w", filePath, err)
	}
	return nil
}

// ReadSection resolves the file and returns the named section's text.
// An unknown name yields a types.SectionNotFoundError listing what is
// available.
func (idx *Indexer) ReadSection(filePath, name string) (*SectionContent, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	content := string(data)

	index := idx.resolver.ResolveContent(filePath, content)
	section, ok := index.Section(name)
	if !ok {
		return nil, &types.SectionNotFoundError{Name: name, Available: index.SectionNames()}
	}

	lines, totalLines := resolver.SplitLines(content)
	start, end := section.Start, section.End
	if end > totalLines {
		end = totalLines
	}
	var text string
	if start <= end && start <= totalLines {
		text = strings.Join(lines[start-1:end], "\n")
	}

	return &SectionContent{
		FilePath: filePath,
		Name:     section.Name,
		Start:    section.Start,
		End:      section.End,
		Text:     text,
	}, nil
}

// Discover walks a directory tree and returns the files with a
// registered language profile, in walk order. Hidden directories and
// directories named in exclude are pruned.
func (idx *Indexer) Discover(root string, exclude []string) ([]string, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// The root itself may be hidden; only prune below it
			if path != root && (strings.HasPrefix(info.Name(), ".") || excluded[info.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := idx.registry.Resolve(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// GenerateAll generates index blocks for all paths concurrently
func (idx *Indexer) GenerateAll(ctx context.Context, paths []string) (*Statistics, error) {
	return idx.runBatch(ctx, storage.OpGenerate, paths, idx.generateOutcome)
}

// VerifyAll verifies all paths concurrently
func (idx *Indexer) VerifyAll(ctx context.Context, paths []string) (*Statistics, error) {
	return idx.runBatch(ctx, storage.OpVerify, paths, idx.verifyOutcome)
}

// RemoveAll removes index blocks from all paths concurrently
func (idx *Indexer) RemoveAll(ctx context.Context, paths []string) (*Statistics, error) {
	return idx.runBatch(ctx, storage.OpRemove, paths, idx.removeOutcome)
}

// runBatch processes every path with a bounded worker pool. A file that
// cannot be processed never aborts the batch; it lands in one of the
// three outcome counters instead.
func (idx *Indexer) runBatch(ctx context.Context, operation string, paths []string,
	fn func(string) (string, string)) (*Statistics, error) {

	startTime := time.Now()
	stats := &Statistics{
		ErrorMessages: make([]string, 0),
	}
	results := make([]storage.RunFile, len(paths))

	semaphore := make(chan struct{}, idx.workers)

	var (
		succeeded int32
		skipped   int32
		failed    int32
	)

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // Protect stats.ErrorMessages

	for i, filePath := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
				// Acquire semaphore
			}
			defer func() { <-semaphore }()

			outcome, detail := fn(filePath)
			switch outcome {
			case storage.OutcomeSucceeded:
				atomic.AddInt32(&succeeded, 1)
			case storage.OutcomeSkipped:
				atomic.AddInt32(&skipped, 1)
			default:
				atomic.AddInt32(&failed, 1)
				mu.Lock()
				stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %s", filePath, detail))
				mu.Unlock()
			}
			results[i] = storage.RunFile{FilePath: filePath, Outcome: outcome, Detail: detail}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Succeeded = int(succeeded)
	stats.Skipped = int(skipped)
	stats.Failed = int(failed)
	stats.Duration = time.Since(startTime)
	stats.Files = results

	idx.recordRun(operation, startTime, stats, results)

	return stats, nil
}

// generateOutcome classifies a single generate for batch accounting.
// Unsupported and unreadable files are skipped; write failures fail.
func (idx *Indexer) generateOutcome(filePath string) (string, string) {
	profile, ok := idx.registry.Resolve(filePath)
	if !ok {
		return storage.OutcomeSkipped, "unsupported language"
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return storage.OutcomeSkipped, fmt.Sprintf("cannot read: %v", err)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return storage.OutcomeSkipped, fmt.Sprintf("cannot read: %v", err)
	}
	if _, err := idx.generate(filePath, string(data), profile, info.Mode().Perm()); err != nil {
		return storage.OutcomeFailed, err.Error()
	}
	return storage.OutcomeSucceeded, ""
}

func (idx *Indexer) verifyOutcome(filePath string) (string, string) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return storage.OutcomeSkipped, fmt.Sprintf("cannot read: %v", err)
	}

	result := idx.verifier.VerifyContent(filePath, string(data))
	if result.HasIssue(types.IssueNoIndex) {
		return storage.OutcomeSkipped, "no index block"
	}
	if result.Valid {
		return storage.OutcomeSucceeded, ""
	}

	details := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		details = append(details, issue.String())
	}
	return storage.OutcomeFailed, strings.Join(details, "; ")
}

func (idx *Indexer) removeOutcome(filePath string) (string, string) {
	info, err := os.Stat(filePath)
	if err != nil {
		return storage.OutcomeSkipped, fmt.Sprintf("cannot read: %v", err)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return storage.OutcomeSkipped, fmt.Sprintf("cannot read: %v", err)
	}
	if err := idx.remove(filePath, string(data), info.Mode().Perm()); err != nil {
		if errors.Is(err, types.ErrNoIndex) {
			return storage.OutcomeSkipped, "no index block"
		}
		return storage.OutcomeFailed, err.Error()
	}
	return storage.OutcomeSucceeded, ""
}

// recordRun persists the batch to the run history. Recording is best
// effort: a history failure never fails the batch that produced it.
func (idx *Indexer) recordRun(operation string, startTime time.Time, stats *Statistics, files []storage.RunFile) {
	if idx.store == nil {
		return
	}

	run := &storage.Run{
		ID:        uuid.NewString(),
		Operation: operation,
		StartedAt: startTime.UTC(),
		Duration:  stats.Duration,
		Succeeded: stats.Succeeded,
		Skipped:   stats.Skipped,
		Failed:    stats.Failed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := idx.store.RecordRun(ctx, run, files); err != nil {
		log.Printf("codemap: failed to record run history: %v", err)
	}
}
