// Package testutil builds spec trees for tests.
package testutil

import (
	"os"
	"path"
	"sort"

	"github.com/spf13/afero"
)

// WriteTree creates each file (slash path → content) on fsys, creating
// parent directories as needed.
func WriteTree(fsys afero.Fs, files map[string]string) error {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := fsys.MkdirAll(path.Dir(p), 0o755); err != nil {
			return err
		}
		if err := afero.WriteFile(fsys, p, []byte(files[p]), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// ListFiles returns every regular file under dir, sorted.
func ListFiles(fsys afero.Fs, dir string) ([]string, error) {
	var out []string
	err := afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			out = append(out, p)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

// SampleTree is one epic with a feature directory holding a task, a
// standalone feature and a task context note.
func SampleTree() map[string]string {
	return map[string]string{
		"specs/1000-epic-storage/1000-epic-storage.spec.md": "# 1000 - Storage Epic\n\n" +
			"Features: [[1001-feature-cold/1001-feature-cold.spec.md]]\n" +
			"See specs/1000-epic-storage/notes for details.\n",
		"specs/1000-epic-storage/1001-feature-cold/1001-feature-cold.spec.md": "# 1001 - Cold Storage\n\n" +
			"Parent: [[../1000-epic-storage/1000-epic-storage.spec.md]]\n" +
			"Tasks: [[1014-task-archive.spec.md]]\n",
		"specs/1000-epic-storage/1001-feature-cold/1014-task-archive.spec.md": "# 1014 - Cold Storage Task\n\n" +
			"Feature: [[../1001-feature-cold/1001-feature-cold.spec.md|feature]]\n",
		"specs/1000-epic-storage/1002-feature-hot.spec.md":     "# 1002: Hot Storage\n\nNo links here.\n",
		"context/2025-08-25.1014-task-cold-storage.context.md": "task context\n",
	}
}
