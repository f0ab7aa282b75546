package core

import (
	"fmt"

	"github.com/spf13/afero"
)

// Task is a leaf entity: <id>-task-*.spec.md inside a feature directory.
type Task struct {
	ID   string
	Path string
}

// Feature is a <id>-feature-* directory inside an epic.
// Spec is "" when the directory holds no feature document.
type Feature struct {
	ID    string
	Path  string
	Spec  string
	Tasks []Task
}

// StandaloneFeature is a <id>-feature-*.spec.md file directly inside an epic.
type StandaloneFeature struct {
	ID   string
	Path string
}

// Epic is a <id>-epic-* directory under the source root.
type Epic struct {
	ID                 string
	Path               string
	Spec               string
	Features           []Feature
	StandaloneFeatures []StandaloneFeature
}

// Structure is the entity tree inferred from the source naming conventions.
// Epics are ordered by source directory name.
type Structure struct {
	Epics []Epic
}

// FileCount returns the number of source documents the builder will copy.
func (s *Structure) FileCount() int {
	n := 0
	for _, e := range s.Epics {
		if e.Spec != "" {
			n++
		}
		for _, f := range e.Features {
			if f.Spec != "" {
				n++
			}
			n += len(f.Tasks)
		}
		n += len(e.StandaloneFeatures)
	}
	return n
}

// Analyze walks sourceDir and infers the epic → feature → task hierarchy
// purely from file and directory names. Every listing is in lexicographic
// order, so "first match" choices are stable across filesystems.
func Analyze(fsys afero.Fs, sourceDir string) (*Structure, error) {
	if !dirExists(fsys, sourceDir) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}

	epicDirs, err := matchEntries(fsys, sourceDir, "*-epic-*", true)
	if err != nil {
		return nil, err
	}

	s := &Structure{}
	for _, epicDir := range epicDirs {
		epic := Epic{ID: ExtractID(lastElem(epicDir)), Path: epicDir}
		if epic.Spec, err = findSpecFile(fsys, epicDir, "epic"); err != nil {
			return nil, err
		}

		featureDirs, err := matchEntries(fsys, epicDir, "*-feature-*", true)
		if err != nil {
			return nil, err
		}
		for _, featureDir := range featureDirs {
			feature := Feature{ID: ExtractID(lastElem(featureDir)), Path: featureDir}
			if feature.Spec, err = findSpecFile(fsys, featureDir, "feature"); err != nil {
				return nil, err
			}
			taskFiles, err := matchEntries(fsys, featureDir, "*-task-*.spec.md", false)
			if err != nil {
				return nil, err
			}
			for _, tf := range taskFiles {
				feature.Tasks = append(feature.Tasks, Task{ID: ExtractID(lastElem(tf)), Path: tf})
			}
			epic.Features = append(epic.Features, feature)
		}

		standalone, err := matchEntries(fsys, epicDir, "*-feature-*.spec.md", false)
		if err != nil {
			return nil, err
		}
		for _, sf := range standalone {
			epic.StandaloneFeatures = append(epic.StandaloneFeatures, StandaloneFeature{ID: ExtractID(lastElem(sf)), Path: sf})
		}

		s.Epics = append(s.Epics, epic)
	}
	return s, nil
}

// findSpecFile returns the document describing an epic or feature directory:
// the first "*<kind>*.spec.md" file, else the first "*<kind>*.md" file.
// Returns "" when neither exists.
func findSpecFile(fsys afero.Fs, dir, kind string) (string, error) {
	for _, pattern := range []string{"*" + kind + "*.spec.md", "*" + kind + "*.md"} {
		files, err := matchEntries(fsys, dir, pattern, false)
		if err != nil {
			return "", err
		}
		if len(files) > 0 {
			return files[0], nil
		}
	}
	return "", nil
}
