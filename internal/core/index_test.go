package core

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"dash prefix", "# 1000 - Storage Epic\n", "Storage Epic"},
		{"colon prefix", "# 1002: Hot Storage\n", "Hot Storage"},
		{"no prefix", "intro\n# Plain Title\n", "Plain Title"},
		{"second level ignored", "## Not This\n# This\n", "This"},
		{"no heading", "just text\n", "1234"},
		{"frontmatter skipped", "---\ntitle: x\n# not a heading\n---\n# Real\n", "Real"},
		{"id only", "# 1000\n", "1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "dir/1234.md", []byte(tt.content), 0o644))
			assert.Equal(t, tt.want, ExtractTitle(fsys, "dir/1234.md"))
		})
	}
}

func TestExtractTitleUnreadable(t *testing.T) {
	assert.Equal(t, "epic", ExtractTitle(afero.NewMemMapFs(), "out/1000/epic.md"))
}

func TestBuildIndexSample(t *testing.T) {
	fsys, _ := buildSample(t)

	got, err := BuildIndex(fsys, "specs_new", "Specification Index")
	require.NoError(t, err)
	want := "# Specification Index\n" +
		"## Epic Overview\n" +
		"\n### [1000 - Storage Epic](1000/epic)\n" +
		"- [1001 - Cold Storage](1000/1001/spec)\n" +
		"  - [1014 - Cold Storage Task](1000/1001/1014)\n" +
		"- [1002 - Hot Storage](1000/1002)\n"
	assert.Equal(t, want, got)
}

func TestBuildIndexSkipsEpicsWithoutDocument(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"out/1000/1001/spec.md": "# Orphan feature",
		"out/2000/epic.md":      "# 2000 - Second",
		"out/2000/2001/1.md":    "# Task without feature spec",
		"out/notes/epic.md":     "# Not numeric",
	})

	got, err := BuildIndex(fsys, "out", "Idx")
	require.NoError(t, err)
	assert.Equal(t, "# Idx\n## Epic Overview\n\n### [2000 - Second](2000/epic)\n", got)
}

func TestBuildIndexExcludesContextFiles(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"out/1000/epic.md":              "# Epic",
		"out/1000/context.md":           "epic notes",
		"out/1000/1001/spec.md":         "# Feature",
		"out/1000/1001/1014.md":         "# Task",
		"out/1000/1001/1014.context.md": "task notes",
	})

	got, err := BuildIndex(fsys, "out", "Idx")
	require.NoError(t, err)
	assert.NotContains(t, got, "context")
	assert.Contains(t, got, "  - [1014 - Task](1000/1001/1014)\n")
}

func TestWriteIndex(t *testing.T) {
	fsys, _ := buildSample(t)

	p, err := WriteIndex(fsys, "specs_new", "Specification Index")
	require.NoError(t, err)
	assert.Equal(t, "specs_new/index.md", p)
	assert.Contains(t, readString(t, fsys, p), "### [1000 - Storage Epic](1000/epic)")
}
