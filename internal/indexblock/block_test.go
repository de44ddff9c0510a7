package indexblock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoMarker(t *testing.T) {
	_, ok := Parse("package main\n\nfunc main() {}\n")
	assert.False(t, ok)
}

func TestParseBareMarkerIgnored(t *testing.T) {
	// The token outside a comment is not a block
	_, ok := Parse("CODEMAP-INDEX v1\n| a | 1 | 2 | 2 |\n")
	assert.False(t, ok)
}

func TestParseBlockAndSpan(t *testing.T) {
	content := strings.Join([]string{
		"#!/usr/bin/env bash",
		"# CODEMAP-INDEX v1",
		"# Generated: 2026-03-14T09:30:00Z",
		"# Total lines: 12",
		"#",
		"# | Section              | Line | End | Size | Description          |",
		"# | -------------------- | ---- | --- | ---- | -------------------- |",
		"# | setup                | 3    | 6   | 4    | env checks           |",
		"# | run                  | 8    | 12  | 5    |                      |",
		"",
		"set -euo pipefail",
	}, "\n")

	block, ok := Parse(content)
	require.True(t, ok)

	assert.Equal(t, Span{Start: 2, End: 9}, block.Span)
	assert.Equal(t, []string{"setup", "run"}, block.Names)

	setup := block.Sections["setup"]
	assert.Equal(t, 3, setup.Start)
	assert.Equal(t, 6, setup.End)
	assert.Equal(t, "env checks", setup.Description)

	run := block.Sections["run"]
	assert.Equal(t, 8, run.Start)
	assert.Equal(t, 12, run.End)
	assert.Empty(t, run.Description)
}

func TestParseRejectsHeaderAndSeparatorRows(t *testing.T) {
	content := strings.Join([]string{
		"// CODEMAP-INDEX v1",
		"// | Section | Line | End | Size | Description |",
		"// | ------- | ---- | --- | ---- | ----------- |",
		"// | body    | 1    | 4   | 4    |             |",
	}, "\n")

	block, ok := Parse(content)
	require.True(t, ok)

	assert.Len(t, block.Sections, 1)
	assert.NotContains(t, block.Sections, "Section")
	assert.NotContains(t, block.Sections, "-------")
}

func TestParseDuplicateNameLastWins(t *testing.T) {
	content := strings.Join([]string{
		"// CODEMAP-INDEX v1",
		"// | body | 1 | 4 | 4 | first |",
		"// | body | 6 | 9 | 4 | second |",
	}, "\n")

	block, ok := Parse(content)
	require.True(t, ok)

	require.Len(t, block.Sections, 1)
	assert.Equal(t, []string{"body"}, block.Names)
	assert.Equal(t, 6, block.Sections["body"].Start)
	assert.Equal(t, "second", block.Sections["body"].Description)
}

func TestParseStopsAtRegularComment(t *testing.T) {
	content := strings.Join([]string{
		"// CODEMAP-INDEX v1",
		"// | body | 1 | 4 | 4 |  |",
		"// Package server handles requests.",
		"package server",
	}, "\n")

	block, ok := Parse(content)
	require.True(t, ok)

	assert.Equal(t, Span{Start: 1, End: 2}, block.Span, "a regular comment after the block must not be absorbed")
}

func TestParseSkipsUnusableRows(t *testing.T) {
	content := strings.Join([]string{
		"// CODEMAP-INDEX v1",
		"// | good     | 2 | 5 | 4 |  |",
		"// | bad      | x | 5 | 4 |  |",
		"// | reversed | 9 | 2 | 1 |  |",
		"// | zero     | 0 | 3 | 4 |  |",
		"// | short    | 7 |",
	}, "\n")

	block, ok := Parse(content)
	require.True(t, ok)

	assert.Equal(t, []string{"good"}, block.Names)
	assert.Equal(t, Span{Start: 1, End: 6}, block.Span, "unusable rows still belong to the block span")
}

func TestParseFirstBlockWins(t *testing.T) {
	content := strings.Join([]string{
		"// CODEMAP-INDEX v1",
		"// | first | 1 | 2 | 2 |  |",
		"",
		"// CODEMAP-INDEX v1",
		"// | second | 3 | 4 | 2 |  |",
	}, "\n")

	block, ok := Parse(content)
	require.True(t, ok)

	assert.Equal(t, []string{"first"}, block.Names)
	assert.Equal(t, Span{Start: 1, End: 2}, block.Span)
}
