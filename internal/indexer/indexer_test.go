package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codemap/internal/indexblock"
	"codemap/internal/language"
	"codemap/internal/storage"
	"codemap/pkg/types"
)

const jsSample = `//#region imports
import a from "a";
//#endregion

function main() {
  a();
}

main();
// done
`

func newIndexer(t *testing.T) *Indexer {
	t.Helper()
	return New(language.NewRegistry(), nil)
}

func writeSample(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateInsertsBlockAtTop(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "app.js", jsSample)

	index, err := idx.Generate(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "// "+indexblock.Marker))

	// The block is 7 lines plus a blank, so the markers moved from 1-3 to 9-11
	block, ok := indexblock.Parse(content)
	require.True(t, ok)
	section, present := block.Sections["imports"]
	require.True(t, present)
	assert.Equal(t, 9, section.Start)
	assert.Equal(t, 11, section.End)

	require.Len(t, index.Sections, 1)
	assert.Equal(t, "imports", index.Sections[0].Name)
	assert.Equal(t, 9, index.Sections[0].Start)
	assert.Equal(t, 11, index.Sections[0].End)
	assert.Equal(t, 18, index.TotalLines)

	result, err := idx.Verify(path)
	require.NoError(t, err)
	assert.True(t, result.Valid, "a freshly generated index verifies cleanly: %v", result.Issues)
}

func TestRegenerateReplacesInPlace(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "app.js", jsSample)

	first, err := idx.Generate(path)
	require.NoError(t, err)

	second, err := idx.Generate(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Equal(t, 1, strings.Count(content, indexblock.Marker), "regeneration must not duplicate the block")
	assert.Equal(t, first.Sections, second.Sections)
	assert.Equal(t, first.TotalLines, second.TotalLines)

	result, err := idx.Verify(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestGenerateUnsupportedLanguage(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "notes.txt", "just text\n")

	_, err := idx.Generate(path)
	assert.ErrorIs(t, err, types.ErrUnsupportedLanguage)
}

func TestGenerateMissingFile(t *testing.T) {
	idx := newIndexer(t)

	_, err := idx.Generate(filepath.Join(t.TempDir(), "absent.go"))
	assert.Error(t, err)
}

func TestGenerateFallbackCoversWholeFile(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "notes.go", "// just notes\n// more notes\n")

	index, err := idx.Generate(path)
	require.NoError(t, err)

	require.Len(t, index.Sections, 1)
	assert.Equal(t, "main", index.Sections[0].Name)
	assert.Equal(t, types.SourceFallback, index.Sections[0].Source)
	assert.Equal(t, 1, index.Sections[0].Start)
	assert.Equal(t, index.TotalLines, index.Sections[0].End)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	block, ok := indexblock.Parse(string(data))
	require.True(t, ok)
	assert.Equal(t, 1, block.Sections["main"].Start)
	assert.Equal(t, 10, block.Sections["main"].End)

	result, err := idx.Verify(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestGenerateWithCompanion(t *testing.T) {
	idx := newIndexer(t)
	dir := t.TempDir()
	path := writeSample(t, dir, "engine.py",
		"def core():\n    pass\n\ndef more():\n    pass\n\ndef helper():\n    pass\n\nlast = 1\n")
	companionPath := writeSample(t, dir, "engine.py.ai.md", `# engine.py

Overview of the engine.

## Sections

| Section | Lines | Description |
| ------- | ----- | ----------- |
| core | 1-5 | Core logic |
| helpers | 6-10 | Helper functions |
`)

	index, err := idx.Generate(path)
	require.NoError(t, err)

	assert.Equal(t, companionPath, index.CompanionPath)
	require.Len(t, index.Sections, 2)
	assert.Equal(t, types.SourceCompanion, index.Sections[0].Source)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "# "+indexblock.Marker), "python blocks use hash comments")

	// Companion line numbers are authored, not recomputed
	block, ok := indexblock.Parse(content)
	require.True(t, ok)
	assert.Equal(t, 1, block.Sections["core"].Start)
	assert.Equal(t, 5, block.Sections["core"].End)
	assert.Equal(t, 6, block.Sections["helpers"].Start)
	assert.Equal(t, 10, block.Sections["helpers"].End)

	result, err := idx.Verify(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestGenerateAfterShebang(t *testing.T) {
	idx := newIndexer(t)
	path := filepath.Join(t.TempDir(), "setup.sh")
	script := "#!/usr/bin/env bash\n# region: setup\nset -e\n# endregion\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	index, err := idx.Generate(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "#!/usr/bin/env bash", lines[0])
	assert.Equal(t, "# "+indexblock.Marker, lines[1])

	require.Len(t, index.Sections, 1)
	assert.Equal(t, "setup", index.Sections[0].Name)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	result, err := idx.Verify(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestRemoveRestoresOriginal(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "app.js", jsSample)

	_, err := idx.Generate(path)
	require.NoError(t, err)

	require.NoError(t, idx.Remove(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, jsSample, string(data), "generate followed by remove restores the original bytes")
}

func TestRemoveNoIndex(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "plain.js", "var x = 1;\n")

	err := idx.Remove(path)
	assert.ErrorIs(t, err, types.ErrNoIndex)
}

func TestReadSection(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "app.js", jsSample)

	section, err := idx.ReadSection(path, "imports")
	require.NoError(t, err)

	assert.Equal(t, "imports", section.Name)
	assert.Equal(t, 1, section.Start)
	assert.Equal(t, 3, section.End)
	assert.Equal(t, "//#region imports\nimport a from \"a\";\n//#endregion", section.Text)
}

func TestReadSectionUnknownName(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "app.js", jsSample)

	_, err := idx.ReadSection(path, "exports")
	require.Error(t, err)

	var notFound *types.SectionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "exports", notFound.Name)
	assert.Contains(t, notFound.Available, "imports")
}

func TestGenerateAllMixedOutcomes(t *testing.T) {
	idx := newIndexer(t)
	dir := t.TempDir()

	good := writeSample(t, dir, "good.js", jsSample)
	unsupported := writeSample(t, dir, "notes.txt", "text\n")
	missing := filepath.Join(dir, "absent.js")

	stats, err := idx.GenerateAll(context.Background(), []string{good, unsupported, missing})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
	assert.Empty(t, stats.ErrorMessages)
	assert.Positive(t, stats.Duration)

	require.Len(t, stats.Files, 3)
	assert.Equal(t, storage.OutcomeSucceeded, stats.Files[0].Outcome)
	assert.Equal(t, "unsupported language", stats.Files[1].Detail)
	assert.Equal(t, storage.OutcomeSkipped, stats.Files[2].Outcome)
}

func TestVerifyAllMixedOutcomes(t *testing.T) {
	idx := newIndexer(t)
	dir := t.TempDir()

	valid := writeSample(t, dir, "valid.js", jsSample)
	_, err := idx.Generate(valid)
	require.NoError(t, err)

	// Push the marker region well past the drift tolerance
	stale := writeSample(t, dir, "stale.js", jsSample)
	_, err = idx.Generate(stale)
	require.NoError(t, err)
	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	drifted := strings.Replace(string(data), "//#region imports",
		strings.Repeat("// filler\n", 10)+"//#region imports", 1)
	require.NoError(t, os.WriteFile(stale, []byte(drifted), 0o644))

	plain := writeSample(t, dir, "plain.js", "var x = 1;\n")

	stats, err := idx.VerifyAll(context.Background(), []string{valid, stale, plain})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Failed)
	require.Len(t, stats.ErrorMessages, 1)
	assert.Contains(t, stats.ErrorMessages[0], "stale.js")
	assert.Contains(t, stats.ErrorMessages[0], string(types.IssueLineDrift))
}

func TestRemoveAllMixedOutcomes(t *testing.T) {
	idx := newIndexer(t)
	dir := t.TempDir()

	indexed := writeSample(t, dir, "indexed.js", jsSample)
	_, err := idx.Generate(indexed)
	require.NoError(t, err)

	plain := writeSample(t, dir, "plain.js", "var x = 1;\n")

	stats, err := idx.RemoveAll(context.Background(), []string{indexed, plain})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
}

func TestBatchRecordsRunHistory(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	idx := New(language.NewRegistry(), &Config{Store: store})
	dir := t.TempDir()
	good := writeSample(t, dir, "good.js", jsSample)
	unsupported := writeSample(t, dir, "notes.txt", "text\n")

	_, err = idx.GenerateAll(context.Background(), []string{good, unsupported})
	require.NoError(t, err)

	runs, err := store.ListRecentRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, storage.OpGenerate, runs[0].Operation)
	assert.Equal(t, 1, runs[0].Succeeded)
	assert.Equal(t, 1, runs[0].Skipped)

	files, err := store.ListRunFiles(context.Background(), runs[0].ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, good, files[0].FilePath)
	assert.Equal(t, storage.OutcomeSucceeded, files[0].Outcome)
	assert.Equal(t, storage.OutcomeSkipped, files[1].Outcome)
	assert.Equal(t, "unsupported language", files[1].Detail)
}

func TestBatchCancelledContext(t *testing.T) {
	idx := newIndexer(t)
	path := writeSample(t, t.TempDir(), "app.js", jsSample)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := idx.GenerateAll(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchEmptyPaths(t *testing.T) {
	idx := newIndexer(t)

	stats, err := idx.GenerateAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Succeeded)
	assert.Zero(t, stats.Skipped)
	assert.Zero(t, stats.Failed)
}

func TestDiscover(t *testing.T) {
	idx := newIndexer(t)
	root := t.TempDir()

	for _, dir := range []string{"src", ".git", "node_modules"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0o755))
	}
	keep := []string{
		writeSample(t, root, "main.go", "package main\n"),
		writeSample(t, filepath.Join(root, "src"), "app.js", jsSample),
	}
	writeSample(t, root, "notes.txt", "plain text\n")
	writeSample(t, filepath.Join(root, ".git"), "hook.sh", "echo hi\n")
	writeSample(t, filepath.Join(root, "node_modules"), "lib.js", "module.exports = {};\n")

	files, err := idx.Discover(root, []string{"node_modules"})
	require.NoError(t, err)
	assert.ElementsMatch(t, keep, files)
}

func TestDiscoverMissingRoot(t *testing.T) {
	idx := newIndexer(t)

	_, err := idx.Discover(filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}

func TestIndexLock(t *testing.T) {
	var lock IndexLock

	require.True(t, lock.TryAcquire())
	assert.False(t, lock.TryAcquire())

	lock.Release()
	assert.True(t, lock.TryAcquire())
}
