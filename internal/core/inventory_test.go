package core

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter(t *testing.T) {
	content := "---\n" +
		"id: 1014\n" +
		"title: Archive\n" +
		"type: Task\n" +
		"parent: 1001\n" +
		"status: in-progress\n" +
		"estimated_hours: 2.5\n" +
		"actual_hours: n/a\n" +
		"tags: [a, b]\n" +
		"---\n# Heading\n"

	fm, ok := parseFrontmatter(content)
	require.True(t, ok)
	assert.Equal(t, "1014", fm.ID)
	assert.Equal(t, "Archive", fm.Title)
	assert.Equal(t, "task", fm.Type)
	assert.Equal(t, "1001", fm.Parent)
	assert.Equal(t, "in-progress", fm.Status)
	require.NotNil(t, fm.EstimatedHours)
	assert.Equal(t, 2.5, *fm.EstimatedHours)
	assert.Nil(t, fm.ActualHours)
}

func TestParseFrontmatterAbsentOrInvalid(t *testing.T) {
	for _, content := range []string{
		"# No frontmatter\n",
		"---\nunterminated: true\n",
		"---\n- a list\n---\n",
		"---\nkey: [unclosed\n---\n",
	} {
		_, ok := parseFrontmatter(content)
		assert.False(t, ok, content)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		rel              string
		kind, id, parent string
	}{
		{"1000/epic.md", "epic", "1000", ""},
		{"1000/1002.md", "feature", "1002", "1000"},
		{"1000/1001/spec.md", "feature", "1001", "1000"},
		{"1000/1001/1014.md", "task", "1014", "1001"},
		{"1000/context.md", "", "", ""},
		{"1000/1001/1014.context.md", "", "", ""},
		{"index.md", "", "", ""},
		{"notes/epic.md", "", "", ""},
		{"1000/1001/x/1.md", "", "", ""},
	}
	for _, tt := range tests {
		kind, id, parent := classify(tt.rel)
		assert.Equal(t, []string{tt.kind, tt.id, tt.parent}, []string{kind, id, parent}, tt.rel)
	}
}

func TestBuildInventory(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"out/index.md":          "# Index",
		"out/1000/epic.md":      "---\nstatus: completed\npriority: high\n---\n# 1000 - Storage\n",
		"out/1000/1001/spec.md": "# 1001 - Cold\n",
		"out/1000/1001/1014.md": "---\ntitle: Archive job\nstatus: blocked\n---\n",
		"out/1000/1002.md":      "no heading",
		"out/1000/context.md":   "notes",
	})

	inv, err := BuildInventory(fsys, "out")
	require.NoError(t, err)
	require.Len(t, inv.Specs, 4)

	epic := inv.Specs["1000"]
	assert.Equal(t, "out/1000/epic.md", epic.Path)
	assert.Equal(t, "epic", epic.Type)
	assert.Equal(t, "Storage", epic.Title)
	assert.Equal(t, "completed", epic.Status)
	assert.Equal(t, "high", epic.Priority)

	task := inv.Specs["1014"]
	assert.Equal(t, "Archive job", task.Title)
	assert.Equal(t, "1001", task.Parent)
	assert.Equal(t, "medium", task.Priority)

	assert.Equal(t, "1002", inv.Specs["1002"].Title)
	assert.Equal(t, "draft", inv.Specs["1002"].Status)

	assert.Equal(t, InventoryStats{
		TotalEpics:    1,
		TotalFeatures: 2,
		TotalTasks:    1,
		Completed:     []string{"1000"},
		InProgress:    []string{},
		Draft:         []string{"1001", "1002"},
		Blocked:       []string{"1014"},
	}, inv.Stats)
}

func TestMarshalInventory(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"out/1000/epic.md": "# Epic\n",
	})
	inv, err := BuildInventory(fsys, "out")
	require.NoError(t, err)

	data, err := MarshalInventory(inv)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	specs := doc["specs"].(map[string]any)
	entry := specs["1000"].(map[string]any)
	assert.Equal(t, "out/1000/epic.md", entry["path"])
	assert.Equal(t, "Epic", entry["title"])
	assert.NotContains(t, entry, "estimated_hours")
}

func TestBuildInventoryMissingDir(t *testing.T) {
	_, err := BuildInventory(afero.NewMemMapFs(), "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory not found")
}
