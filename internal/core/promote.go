package core

import (
	"fmt"

	"github.com/spf13/afero"
)

// PromoteResult reports where the directories went.
type PromoteResult struct {
	OldSourceDir string // the previous source tree, kept aside
	SourceDir    string // now holds the migrated tree
}

// Promote makes a finished migration the live tree: the source dir is
// renamed to <source>_old and the target dir takes its place.
func Promote(fsys afero.Fs, cfg Config) (*PromoteResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	oldDir := NormalizePath(cfg.SourceDir) + "_old"
	if !dirExists(fsys, cfg.TargetDir) {
		return nil, fmt.Errorf("target not found: %s (run 'specmig migrate' first)", cfg.TargetDir)
	}
	if exists, err := afero.Exists(fsys, oldDir); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%s already exists: remove it before promoting", oldDir)
	}
	if dirExists(fsys, cfg.SourceDir) {
		if err := fsys.Rename(cfg.SourceDir, oldDir); err != nil {
			return nil, fmt.Errorf("move source aside: %w", err)
		}
	}
	if err := fsys.Rename(cfg.TargetDir, cfg.SourceDir); err != nil {
		return nil, fmt.Errorf("promote target: %w", err)
	}
	return &PromoteResult{OldSourceDir: oldDir, SourceDir: cfg.SourceDir}, nil
}

// RollbackOptions controls the rollback operation.
type RollbackOptions struct {
	BackupDir string // "" = latest backup
	Force     bool   // replace an existing source dir
}

// RollbackResult reports which backup was restored.
type RollbackResult struct {
	BackupDir string
	SourceDir string
}

// Rollback copies a backup back into the source dir. An existing source
// dir is an error unless opts.Force is set, in which case it is removed.
// The backup itself is left untouched.
func Rollback(fsys afero.Fs, cfg Config, opts RollbackOptions) (*RollbackResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backup := opts.BackupDir
	if backup == "" {
		latest, err := LatestBackup(fsys, cfg.BackupPrefix)
		if err != nil {
			return nil, err
		}
		if latest == "" {
			return nil, fmt.Errorf("no backup found with prefix %q", cfg.BackupPrefix)
		}
		backup = latest
	}
	backup = NormalizePath(backup)
	if !dirExists(fsys, backup) {
		return nil, fmt.Errorf("backup not found: %s", backup)
	}
	if exists, err := afero.Exists(fsys, cfg.SourceDir); err != nil {
		return nil, err
	} else if exists {
		if !opts.Force {
			return nil, fmt.Errorf("%s already exists: use --force to replace it", cfg.SourceDir)
		}
		if err := fsys.RemoveAll(cfg.SourceDir); err != nil {
			return nil, err
		}
	}
	if err := copyTree(fsys, backup, fsys, cfg.SourceDir); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return &RollbackResult{BackupDir: backup, SourceDir: cfg.SourceDir}, nil
}
