package core

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotapoi/specmig/internal/testutil"
)

func TestAnalyzeSampleTree(t *testing.T) {
	fsys := newTree(t, testutil.SampleTree())

	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	require.Len(t, s.Epics, 1)

	epic := s.Epics[0]
	assert.Equal(t, "1000", epic.ID)
	assert.Equal(t, "specs/1000-epic-storage", epic.Path)
	assert.Equal(t, "specs/1000-epic-storage/1000-epic-storage.spec.md", epic.Spec)

	require.Len(t, epic.Features, 1)
	feature := epic.Features[0]
	assert.Equal(t, "1001", feature.ID)
	assert.Equal(t, "specs/1000-epic-storage/1001-feature-cold/1001-feature-cold.spec.md", feature.Spec)
	require.Len(t, feature.Tasks, 1)
	assert.Equal(t, Task{ID: "1014", Path: "specs/1000-epic-storage/1001-feature-cold/1014-task-archive.spec.md"}, feature.Tasks[0])

	require.Len(t, epic.StandaloneFeatures, 1)
	assert.Equal(t, "1002", epic.StandaloneFeatures[0].ID)

	assert.Equal(t, 4, s.FileCount())
}

func TestAnalyzeMissingSource(t *testing.T) {
	_, err := Analyze(afero.NewMemMapFs(), "specs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func TestAnalyzeEmptySource(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("specs", 0o755))

	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	assert.Empty(t, s.Epics)
	assert.Equal(t, 0, s.FileCount())
}

func TestAnalyzeIgnoresNonMatchingEntries(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"specs/README.md":                                 "readme",
		"specs/misc/notes.md":                             "notes",
		"specs/2000-epic-api/2000-epic-api.spec.md":       "# API",
		"specs/2000-epic-api/notes.md":                    "loose",
		"specs/2000-epic-api/2001-feature-auth/readme.md": "no spec here",
	})

	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	require.Len(t, s.Epics, 1)
	require.Len(t, s.Epics[0].Features, 1)
	assert.Equal(t, "", s.Epics[0].Features[0].Spec)
	assert.Empty(t, s.Epics[0].Features[0].Tasks)
	assert.Empty(t, s.Epics[0].StandaloneFeatures)
}

func TestAnalyzeSpecFileFallback(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"specs/3000-epic-ui/epic-overview.md":  "# Overview",
		"specs/3000-epic-ui/zz-epic-notes.md":  "# Notes",
		"specs/3000-epic-ui/epic-plan.spec.md": "# Plan",
		"specs/4000-epic-db/4000-epic-db.md":   "# DB",
		"specs/4000-epic-db/a-epic-first.md":   "# First",
	})

	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	require.Len(t, s.Epics, 2)
	assert.Equal(t, "specs/3000-epic-ui/epic-plan.spec.md", s.Epics[0].Spec)
	assert.Equal(t, "specs/4000-epic-db/4000-epic-db.md", s.Epics[1].Spec)
}

func TestAnalyzeOrdersEpicsByName(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"specs/2000-epic-b/2000-epic-b.spec.md":    "b",
		"specs/1000-epic-a/1000-epic-a.spec.md":    "a",
		"specs/1000-epic-a/1003-feature-z.spec.md": "z",
		"specs/1000-epic-a/1002-feature-y.spec.md": "y",
	})

	s, err := Analyze(fsys, "specs")
	require.NoError(t, err)
	require.Len(t, s.Epics, 2)
	assert.Equal(t, "1000", s.Epics[0].ID)
	assert.Equal(t, "2000", s.Epics[1].ID)
	require.Len(t, s.Epics[0].StandaloneFeatures, 2)
	assert.Equal(t, "1002", s.Epics[0].StandaloneFeatures[0].ID)
	assert.Equal(t, "1003", s.Epics[0].StandaloneFeatures[1].ID)
}
