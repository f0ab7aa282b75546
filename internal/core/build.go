package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Journal accumulates the path mappings and log lines of one run.
type Journal struct {
	Mappings LinkMappings
	Log      []string
}

func (j *Journal) copied(kind, id, oldPath, newPath string) {
	j.Mappings.Add(oldPath, newPath)
	j.Log = append(j.Log, fmt.Sprintf("%s %s: %s → %s", kind, id, oldPath, newPath))
}

// BuildStructure wipes targetDir on dst and materializes s into the ID-only
// layout, copying each document from src and journaling every copy.
// The first copy error aborts the build; nothing already written is undone.
func BuildStructure(src afero.Fs, dst afero.Fs, s *Structure, targetDir string, j *Journal, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := dst.RemoveAll(targetDir); err != nil {
		return fmt.Errorf("clean target: %w", err)
	}
	if err := dst.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	for _, epic := range s.Epics {
		if epic.ID == "" {
			logger.Warn("skipping epic without numeric id", "path", epic.Path)
			continue
		}
		epicDir := joinRel(targetDir, epic.ID)
		if err := dst.MkdirAll(epicDir, 0o755); err != nil {
			return err
		}
		if epic.Spec != "" {
			newPath := joinRel(epicDir, "epic.md")
			if err := copyFile(src, epic.Spec, dst, newPath); err != nil {
				return err
			}
			j.copied("Epic", epic.ID, epic.Spec, newPath)
		}

		for _, feature := range epic.Features {
			if feature.ID == "" {
				logger.Warn("skipping feature without numeric id", "path", feature.Path)
				continue
			}
			featureDir := joinRel(epicDir, feature.ID)
			if err := dst.MkdirAll(featureDir, 0o755); err != nil {
				return err
			}
			if feature.Spec != "" {
				newPath := joinRel(featureDir, "spec.md")
				if err := copyFile(src, feature.Spec, dst, newPath); err != nil {
					return err
				}
				j.copied("Feature", feature.ID, feature.Spec, newPath)
			}
			for _, task := range feature.Tasks {
				if task.ID == "" {
					logger.Warn("skipping task without numeric id", "path", task.Path)
					continue
				}
				newPath := joinRel(featureDir, task.ID+".md")
				if err := copyFile(src, task.Path, dst, newPath); err != nil {
					return err
				}
				j.copied("Task", task.ID, task.Path, newPath)
			}
		}

		for _, feature := range epic.StandaloneFeatures {
			if feature.ID == "" {
				logger.Warn("skipping feature without numeric id", "path", feature.Path)
				continue
			}
			newPath := joinRel(epicDir, feature.ID+".md")
			if err := copyFile(src, feature.Path, dst, newPath); err != nil {
				return err
			}
			j.copied("Standalone Feature", feature.ID, feature.Path, newPath)
		}
	}
	return nil
}
