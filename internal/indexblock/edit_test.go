package indexblock

import (
	"strings"
	"testing"
	"time"

	"codemap/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertFreshInsert(t *testing.T) {
	content := "package main\n\nfunc main() {}\n"
	rendered := "// CODEMAP-INDEX v1\n// | main | 1 | 3 | 3 |  |"

	updated := Upsert(content, rendered, nil)

	assert.True(t, strings.HasPrefix(updated, rendered+"\n\n"), "block goes first, followed by one blank line")
	assert.True(t, strings.HasSuffix(updated, content), "original content is preserved byte for byte")
}

func TestUpsertPreservesShebang(t *testing.T) {
	content := "#!/usr/bin/env bash\nset -e\necho done\n"
	rendered := "# CODEMAP-INDEX v1\n# | main | 1 | 3 | 3 |  |"

	updated := Upsert(content, rendered, nil)
	lines := strings.Split(updated, "\n")

	assert.Equal(t, "#!/usr/bin/env bash", lines[0], "interpreter directive stays on line one")
	assert.Equal(t, "# CODEMAP-INDEX v1", lines[1])
	assert.True(t, strings.HasSuffix(updated, "set -e\necho done\n"))
}

func TestUpsertReplacesAtSameOffset(t *testing.T) {
	sections := []types.Section{{Name: "main", Start: 1, End: 6, Source: types.SourceFallback}}
	base := "const a = 1;\nconst b = 2;\n\nfunction run() {}\n"

	v1 := Render(sections, 6, "//", time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	withBlock := Upsert(base, v1, nil)

	block, ok := Parse(withBlock)
	require.True(t, ok)

	longer := []types.Section{{
		Name:        "main",
		Start:       1,
		End:         6,
		Description: "a description well beyond twenty characters",
		Source:      types.SourceFallback,
	}}
	v2 := Render(longer, 6, "//", time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC))

	updated := Upsert(withBlock, v2, &block.Span)

	// The new block sits at the same line offset as the old one
	newBlock, ok := Parse(updated)
	require.True(t, ok)
	assert.Equal(t, block.Span.Start, newBlock.Span.Start)
	assert.Contains(t, updated, "2026-03-15T11:00:00Z")
	assert.NotContains(t, updated, "2026-03-14T09:30:00Z")

	// Everything outside the block is untouched
	assert.Equal(t, Remove(withBlock, block.Span), Remove(updated, newBlock.Span))
	assert.True(t, strings.HasSuffix(updated, base))
}

func TestRemoveBlockAndTrailingBlanks(t *testing.T) {
	content := strings.Join([]string{
		"// CODEMAP-INDEX v1",
		"// | main | 1 | 2 | 2 |  |",
		"",
		"",
		"package main",
		"",
	}, "\n")

	out := Remove(content, Span{Start: 1, End: 2})

	assert.Equal(t, "package main\n", out)
}

func TestRemoveMidFileKeepsSurroundings(t *testing.T) {
	content := strings.Join([]string{
		"#!/bin/sh",
		"# CODEMAP-INDEX v1",
		"# | run | 3 | 4 | 2 |  |",
		"",
		"echo one",
		"echo two",
	}, "\n")

	out := Remove(content, Span{Start: 2, End: 3})

	assert.Equal(t, "#!/bin/sh\necho one\necho two", out)
}

func TestRemoveKeepsFinalNewline(t *testing.T) {
	content := "echo hi\n# CODEMAP-INDEX v1\n# | main | 1 | 1 | 1 |  |\n"

	out := Remove(content, Span{Start: 2, End: 3})

	assert.Equal(t, "echo hi\n", out)
}

func TestRemoveWholeFileBlock(t *testing.T) {
	content := "// CODEMAP-INDEX v1\n// | main | 1 | 1 | 1 |  |\n"

	out := Remove(content, Span{Start: 1, End: 2})

	assert.Equal(t, "", out)
}

func TestRemoveInvalidSpan(t *testing.T) {
	content := "package main\n"

	assert.Equal(t, content, Remove(content, Span{Start: 5, End: 9}))
	assert.Equal(t, content, Remove(content, Span{Start: 0, End: 1}))
}

func TestUpsertRoundTripThroughFile(t *testing.T) {
	// Generate, re-generate, then remove: the file must come back to its
	// original bytes (modulo the blank line the first insert added).
	original := "package main\n\nfunc main() {}\n"
	sections := []types.Section{{Name: "main", Start: 1, End: 3, Source: types.SourceFallback}}

	rendered := Render(sections, 3, "//", time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	withBlock := Upsert(original, rendered, nil)

	block, ok := Parse(withBlock)
	require.True(t, ok)

	restored := Remove(withBlock, block.Span)
	assert.Equal(t, original, restored)
}
