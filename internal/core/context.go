package core

import (
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

var (
	// "2025-08-25.1014-task-cold-storage.context.md" → 1014
	taskContextID = regexp.MustCompile(`\.(\d{4})[^\d]`)
	anyFourDigits = regexp.MustCompile(`\d{4}`)
)

// MergeContexts places the *.context.md files of each context dir beside the
// migrated document sharing their ID. Files with no destination are skipped
// and not counted.
// Returns the number of files placed.
func MergeContexts(src afero.Fs, dst afero.Fs, contextDirs []string, targetDir string, j *Journal, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	placed := 0
	for _, dir := range contextDirs {
		if !dirExists(src, dir) {
			continue
		}
		files, err := matchEntries(src, dir, "*.context.md", false)
		if err != nil {
			return placed, err
		}
		for _, f := range files {
			newPath, err := placeContext(src, dst, f, targetDir)
			if err != nil {
				return placed, err
			}
			if newPath == "" {
				logger.Debug("context file not matched", "path", f)
				continue
			}
			j.Log = append(j.Log, "Context: "+f+" → "+newPath)
			placed++
		}
	}
	return placed, nil
}

// placeContext copies one context file into the target tree.
// Returns "" when no destination was found.
func placeContext(src afero.Fs, dst afero.Fs, contextFile, targetDir string) (string, error) {
	name := lastElem(contextFile)

	if m := taskContextID.FindStringSubmatch(name); m != nil {
		id := m[1]
		spec, err := findTargetDocument(dst, targetDir, id+".md")
		if err != nil {
			return "", err
		}
		if spec != "" {
			newPath := joinRel(parentDir(spec), id+".context.md")
			return newPath, copyFile(src, contextFile, dst, newPath)
		}
	}

	if strings.Contains(strings.ToLower(name), "epic") {
		for _, id := range anyFourDigits.FindAllString(name, -1) {
			epicDir := joinRel(targetDir, id)
			if !dirExists(dst, epicDir) {
				continue
			}
			newPath := joinRel(epicDir, "context.md")
			return newPath, copyFile(src, contextFile, dst, newPath)
		}
	}
	return "", nil
}

// findTargetDocument returns the first file named name in a lexicographic
// walk of targetDir, or "".
func findTargetDocument(fsys afero.Fs, targetDir, name string) (string, error) {
	files, err := collectMarkdownFiles(fsys, targetDir)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if lastElem(f) == name {
			return f, nil
		}
	}
	return "", nil
}
