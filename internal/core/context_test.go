package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryotapoi/specmig/internal/testutil"
)

func TestMergeContextsTaskAndEpic(t *testing.T) {
	fsys, _ := buildSample(t)
	require.NoError(t, testutil.WriteTree(fsys, map[string]string{
		"context/2025-08-25.1014-task-cold-storage.context.md": "task notes",
		"plan/1000-epic-storage.context.md":                    "epic notes",
		"plan/readme.md":                                       "not a context file",
	}))

	j := &Journal{}
	n, err := MergeContexts(fsys, fsys, []string{"context", "plan"}, "specs_new", j, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "task notes", readString(t, fsys, "specs_new/1000/1001/1014.context.md"))
	assert.Equal(t, "epic notes", readString(t, fsys, "specs_new/1000/context.md"))
	assert.Equal(t, []string{
		"Context: context/2025-08-25.1014-task-cold-storage.context.md → specs_new/1000/1001/1014.context.md",
		"Context: plan/1000-epic-storage.context.md → specs_new/1000/context.md",
	}, j.Log)
}

func TestMergeContextsUnmatchedDropped(t *testing.T) {
	fsys, _ := buildSample(t)
	require.NoError(t, testutil.WriteTree(fsys, map[string]string{
		"notes/2025-08-25.9999-task-unknown.context.md": "orphan",
		"notes/general.context.md":                      "no id",
		"notes/notes-epic-8888.context.md":              "no such epic",
	}))

	j := &Journal{}
	n, err := MergeContexts(fsys, fsys, []string{"notes"}, "specs_new", j, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, j.Log)
}

func TestMergeContextsNilLogger(t *testing.T) {
	fsys, _ := buildSample(t)
	require.NoError(t, testutil.WriteTree(fsys, map[string]string{
		"notes/general.context.md": "no id",
	}))

	var n int
	var err error
	assert.NotPanics(t, func() {
		n, err = MergeContexts(fsys, fsys, []string{"notes"}, "specs_new", &Journal{}, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMergeContextsMissingDirs(t *testing.T) {
	fsys, _ := buildSample(t)
	n, err := MergeContexts(fsys, fsys, []string{"plan", "missing"}, "specs_new", &Journal{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMergeContextsEpicTriesEveryID(t *testing.T) {
	fsys, _ := buildSample(t)
	require.NoError(t, testutil.WriteTree(fsys, map[string]string{
		"plan/2025-epic-1000.context.md": "second run wins",
	}))

	n, err := MergeContexts(fsys, fsys, []string{"plan"}, "specs_new", &Journal{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "second run wins", readString(t, fsys, "specs_new/1000/context.md"))
}

func TestTaskContextID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"2025-08-25.1014-task-cold-storage.context.md", "1014"},
		{"x.2001_notes.context.md", "2001"},
		{"1014-task.context.md", ""},
		{"2025-08-25.10145.context.md", ""},
	}
	for _, tt := range tests {
		got := ""
		if m := taskContextID.FindStringSubmatch(tt.name); m != nil {
			got = m[1]
		}
		assert.Equal(t, tt.want, got, tt.name)
	}
}
