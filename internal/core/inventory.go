package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// SpecEntry is one document of an inventory.
type SpecEntry struct {
	Path string `json:"path"`
	Frontmatter
}

// InventoryStats aggregates an inventory by type and status.
type InventoryStats struct {
	TotalEpics    int      `json:"total_epics"`
	TotalFeatures int      `json:"total_features"`
	TotalTasks    int      `json:"total_tasks"`
	Completed     []string `json:"completed"`
	InProgress    []string `json:"in_progress"`
	Draft         []string `json:"draft"`
	Blocked       []string `json:"blocked"`
}

// Inventory is the spec metadata of a migrated tree (specs-data.json).
type Inventory struct {
	Specs map[string]SpecEntry `json:"specs"`
	Stats InventoryStats       `json:"stats"`
}

// BuildInventory reads the frontmatter of every entity document under dir.
// Index and context files are skipped. Missing fields are inferred from the
// ID-only layout: type from the document position, id from the path, title
// from the first heading; status defaults to draft, priority to medium.
func BuildInventory(fsys afero.Fs, dir string) (*Inventory, error) {
	if !dirExists(fsys, dir) {
		return nil, fmt.Errorf("directory not found: %s", dir)
	}
	files, err := collectMarkdownFiles(fsys, dir)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{Specs: make(map[string]SpecEntry)}
	prefix := NormalizePath(dir) + "/"
	for _, f := range files {
		rel := strings.TrimPrefix(f, prefix)
		kind, id, parent := classify(rel)
		if kind == "" {
			continue
		}
		data, err := afero.ReadFile(fsys, f)
		if err != nil {
			return nil, err
		}
		fm, _ := parseFrontmatter(string(data))
		if fm.Type == "" {
			fm.Type = kind
		}
		if fm.ID == "" {
			fm.ID = id
		}
		if fm.Parent == "" {
			fm.Parent = parent
		}
		if fm.Title == "" {
			if t, ok := headingTitle(string(data)); ok {
				fm.Title = t
			} else {
				fm.Title = stem(f)
			}
		}
		if fm.Status == "" {
			fm.Status = "draft"
		}
		if fm.Priority == "" {
			fm.Priority = "medium"
		}
		inv.Specs[fm.ID] = SpecEntry{Path: f, Frontmatter: fm}
	}
	inv.Stats = inventoryStats(inv.Specs)
	return inv, nil
}

// classify infers the entity kind, ID and parent ID of a document from its
// position in the ID-only layout. kind is "" for non-entity files.
func classify(rel string) (kind, id, parent string) {
	parts := strings.Split(rel, "/")
	name := parts[len(parts)-1]
	if isContextName(name) {
		return "", "", ""
	}
	switch len(parts) {
	case 2:
		if !isDigits(parts[0]) {
			return "", "", ""
		}
		if name == "epic.md" {
			return "epic", parts[0], ""
		}
		if isDigits(stem(name)) {
			return "feature", stem(name), parts[0]
		}
	case 3:
		if !isDigits(parts[0]) || !isDigits(parts[1]) {
			return "", "", ""
		}
		if name == "spec.md" {
			return "feature", parts[1], parts[0]
		}
		if isDigits(stem(name)) {
			return "task", stem(name), parts[1]
		}
	}
	return "", "", ""
}

func inventoryStats(specs map[string]SpecEntry) InventoryStats {
	st := InventoryStats{
		Completed:  []string{},
		InProgress: []string{},
		Draft:      []string{},
		Blocked:    []string{},
	}
	ids := make([]string, 0, len(specs))
	for id := range specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := specs[id]
		switch s.Type {
		case "epic":
			st.TotalEpics++
		case "feature":
			st.TotalFeatures++
		case "task":
			st.TotalTasks++
		}
		switch s.Status {
		case "completed":
			st.Completed = append(st.Completed, id)
		case "in_progress", "in-progress":
			st.InProgress = append(st.InProgress, id)
		case "draft":
			st.Draft = append(st.Draft, id)
		case "blocked":
			st.Blocked = append(st.Blocked, id)
		}
	}
	return st
}

// MarshalInventory renders specs-data.json.
func MarshalInventory(inv *Inventory) ([]byte, error) {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
