package core

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// StatsOptions controls which fields to return.
type StatsOptions struct {
	Fields []string // nil/empty = all
}

// MigrationStats counts the documents of an ID-only tree.
type MigrationStats struct {
	Epics      int `json:"epics"`
	Features   int `json:"features"`
	Tasks      int `json:"tasks"`
	Contexts   int `json:"contexts"`
	TotalFiles int `json:"total_files"`
}

var validStatsFields = map[string]bool{
	"epics":       true,
	"features":    true,
	"tasks":       true,
	"contexts":    true,
	"total_files": true,
}

// StatsFields lists the stats fields in report order.
var StatsFields = []string{"epics", "features", "tasks", "contexts", "total_files"}

func validateStatsFields(fields []string) error {
	for _, f := range fields {
		if !validStatsFields[f] {
			return fmt.Errorf("unknown stats field: %s", f)
		}
	}
	return nil
}

// Stats counts documents in targetDir by their position in the layout:
// <epic>/epic.md, <epic>/<feature>/spec.md, <epic>/<feature>.md,
// <epic>/<feature>/<task>.md and context notes. total_files counts every
// .md file, the index included.
func Stats(fsys afero.Fs, targetDir string, opts StatsOptions) (*MigrationStats, error) {
	if err := validateStatsFields(opts.Fields); err != nil {
		return nil, err
	}
	if !dirExists(fsys, targetDir) {
		return nil, fmt.Errorf("target not found: %s", targetDir)
	}
	files, err := collectMarkdownFiles(fsys, targetDir)
	if err != nil {
		return nil, err
	}

	prefix := NormalizePath(targetDir) + "/"
	result := &MigrationStats{}
	for _, f := range files {
		parts := strings.Split(strings.TrimPrefix(f, prefix), "/")
		name := parts[len(parts)-1]
		numbered := isDigits(stem(name))

		if isFieldActive("epics", opts.Fields) && len(parts) == 2 && name == "epic.md" {
			result.Epics++
		}
		if isFieldActive("features", opts.Fields) {
			if (len(parts) == 3 && name == "spec.md") || (len(parts) == 2 && numbered) {
				result.Features++
			}
		}
		if isFieldActive("tasks", opts.Fields) && len(parts) == 3 && numbered {
			result.Tasks++
		}
		if isFieldActive("contexts", opts.Fields) && isContextName(name) {
			result.Contexts++
		}
		if isFieldActive("total_files", opts.Fields) {
			result.TotalFiles++
		}
	}
	return result, nil
}

// RecordedStats returns the stats stored in a migration-mappings.json file,
// with fields not requested left at zero.
func RecordedStats(fsys afero.Fs, mappingsFile string, opts StatsOptions) (*MigrationStats, error) {
	if err := validateStatsFields(opts.Fields); err != nil {
		return nil, err
	}
	doc, err := ReadMappings(fsys, mappingsFile)
	if err != nil {
		return nil, fmt.Errorf("read recorded stats: %w", err)
	}
	st := doc.Stats
	result := &MigrationStats{}
	if isFieldActive("epics", opts.Fields) {
		result.Epics = st.Epics
	}
	if isFieldActive("features", opts.Fields) {
		result.Features = st.Features
	}
	if isFieldActive("tasks", opts.Fields) {
		result.Tasks = st.Tasks
	}
	if isFieldActive("contexts", opts.Fields) {
		result.Contexts = st.Contexts
	}
	if isFieldActive("total_files", opts.Fields) {
		result.TotalFiles = st.TotalFiles
	}
	return result, nil
}

// isFieldActive returns true if the field is requested (or if fields is empty, meaning all).
func isFieldActive(field string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
