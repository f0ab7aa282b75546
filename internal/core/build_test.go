package core

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotapoi/specmig/internal/testutil"
)

func buildSample(t *testing.T) (afero.Fs, *Journal) {
	t.Helper()
	fsys := newTree(t, testutil.SampleTree())
	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	j := &Journal{}
	require.NoError(t, BuildStructure(fsys, fsys, s, "specs_new", j, discardLogger()))
	return fsys, j
}

func TestBuildStructureLayout(t *testing.T) {
	fsys, j := buildSample(t)

	files, err := testutil.ListFiles(fsys, "specs_new")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"specs_new/1000/1001/1014.md",
		"specs_new/1000/1001/spec.md",
		"specs_new/1000/1002.md",
		"specs_new/1000/epic.md",
	}, files)

	assert.Equal(t, readString(t, fsys, "specs/1000-epic-storage/1002-feature-hot.spec.md"),
		readString(t, fsys, "specs_new/1000/1002.md"))

	assert.Equal(t, []string{
		"Epic 1000: specs/1000-epic-storage/1000-epic-storage.spec.md → specs_new/1000/epic.md",
		"Feature 1001: specs/1000-epic-storage/1001-feature-cold/1001-feature-cold.spec.md → specs_new/1000/1001/spec.md",
		"Task 1014: specs/1000-epic-storage/1001-feature-cold/1014-task-archive.spec.md → specs_new/1000/1001/1014.md",
		"Standalone Feature 1002: specs/1000-epic-storage/1002-feature-hot.spec.md → specs_new/1000/1002.md",
	}, j.Log)

	require.Len(t, j.Mappings, 4)
	assert.Contains(t, j.Mappings, Mapping{
		Old: "specs/1000-epic-storage/1001-feature-cold/1014-task-archive.spec.md",
		New: "specs_new/1000/1001/1014.md",
	})
}

func TestBuildStructureWipesTarget(t *testing.T) {
	fsys := newTree(t, testutil.SampleTree())
	require.NoError(t, testutil.WriteTree(fsys, map[string]string{
		"specs_new/stale.md":       "old",
		"specs_new/1000/epic.md":   "manual edit",
		"specs_new/9999/9999/1.md": "gone",
	}))

	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	require.NoError(t, BuildStructure(fsys, fsys, s, "specs_new", &Journal{}, discardLogger()))

	exists, err := afero.Exists(fsys, "specs_new/stale.md")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.False(t, dirExists(fsys, "specs_new/9999"))
	assert.Contains(t, readString(t, fsys, "specs_new/1000/epic.md"), "Storage Epic")
}

func TestBuildStructurePreservesModTime(t *testing.T) {
	fsys := newTree(t, testutil.SampleTree())
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	src := "specs/1000-epic-storage/1002-feature-hot.spec.md"
	require.NoError(t, fsys.Chtimes(src, mtime, mtime))

	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	require.NoError(t, BuildStructure(fsys, fsys, s, "specs_new", &Journal{}, discardLogger()))

	info, err := fsys.Stat("specs_new/1000/1002.md")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestBuildStructureFeatureWithoutSpec(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"specs/1000-epic-a/1000-epic-a.spec.md":                  "# A",
		"specs/1000-epic-a/1001-feature-b/1015-task-c.spec.md":   "# C",
		"specs/1000-epic-a/1001-feature-b/1016-task-d.spec.md":   "# D",
		"specs/1000-epic-a/1001-feature-b/unrelated-document.md": "x",
	})
	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	j := &Journal{}
	require.NoError(t, BuildStructure(fsys, fsys, s, "out", j, discardLogger()))

	files, err := testutil.ListFiles(fsys, "out")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"out/1000/1001/1015.md",
		"out/1000/1001/1016.md",
		"out/1000/epic.md",
	}, files)
	assert.Len(t, j.Log, 3)
}

func TestBuildStructureSkipsEmptyIDs(t *testing.T) {
	s := &Structure{Epics: []Epic{
		{ID: "", Path: "specs/x-epic-y"},
		{ID: "2000", Path: "specs/2000-epic-z", Features: []Feature{
			{ID: "", Path: "specs/2000-epic-z/x-feature-y"},
		}},
	}}
	fsys := afero.NewMemMapFs()
	j := &Journal{}
	require.NoError(t, BuildStructure(fsys, fsys, s, "out", j, discardLogger()))

	assert.Empty(t, j.Log)
	assert.True(t, dirExists(fsys, "out/2000"))
	assert.False(t, dirExists(fsys, "out/x-epic-y"))
}

func TestBuildStructureNilLogger(t *testing.T) {
	s := &Structure{Epics: []Epic{{ID: "", Path: "specs/x-epic-foo"}}}
	fsys := afero.NewMemMapFs()
	j := &Journal{}
	assert.NotPanics(t, func() {
		assert.NoError(t, BuildStructure(fsys, fsys, s, "specs_new", j, nil))
	})
	assert.Empty(t, j.Log)
}
