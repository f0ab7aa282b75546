package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file looked up in the workspace root.
const ConfigFileName = "specmig.yaml"

// Config holds the directory layout of a migration. Every path is relative
// to the workspace root.
type Config struct {
	SourceDir    string   `yaml:"source_dir" mapstructure:"source_dir"`
	TargetDir    string   `yaml:"target_dir" mapstructure:"target_dir"`
	ContextDirs  []string `yaml:"context_dirs" mapstructure:"context_dirs"`
	BackupPrefix string   `yaml:"backup_prefix" mapstructure:"backup_prefix"`
	ReportFile   string   `yaml:"report_file" mapstructure:"report_file"`
	MappingsFile string   `yaml:"mappings_file" mapstructure:"mappings_file"`
	IndexTitle   string   `yaml:"index_title" mapstructure:"index_title"`
	// Ledger is the sqlite run ledger. Empty disables recording.
	Ledger string `yaml:"ledger" mapstructure:"ledger"`
}

// DefaultConfig returns the layout used when no specmig.yaml is present.
func DefaultConfig() Config {
	return Config{
		SourceDir:    "specs",
		TargetDir:    "specs_new",
		ContextDirs:  []string{"context", "plan"},
		BackupPrefix: "specs_backup_",
		ReportFile:   "migration-report.md",
		MappingsFile: "migration-mappings.json",
		IndexTitle:   "Specification Index",
		Ledger:       filepath.ToSlash(filepath.Join(dataDirName, ledgerFileName)),
	}
}

// Validate checks that the layout is usable.
func (c Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.TargetDir == "" {
		return fmt.Errorf("target_dir is required")
	}
	if c.BackupPrefix == "" {
		return fmt.Errorf("backup_prefix is required")
	}
	paths := [][2]string{
		{"source_dir", c.SourceDir},
		{"target_dir", c.TargetDir},
		{"report_file", c.ReportFile},
		{"mappings_file", c.MappingsFile},
		{"ledger", c.Ledger},
	}
	for _, dir := range c.ContextDirs {
		paths = append(paths, [2]string{"context_dirs", dir})
	}
	for _, kv := range paths {
		if err := checkRelative(kv[0], kv[1]); err != nil {
			return err
		}
	}
	source, target := NormalizePath(c.SourceDir), NormalizePath(c.TargetDir)
	if target == "." {
		return fmt.Errorf("target_dir must not be the root: it is wiped on every run")
	}
	if source == target {
		return fmt.Errorf("source_dir and target_dir are the same: %s", c.SourceDir)
	}
	if isWithin(target, source) {
		return fmt.Errorf("target_dir must not be inside source_dir: %s", c.TargetDir)
	}
	if isWithin(source, target) {
		return fmt.Errorf("source_dir must not be inside target_dir: %s", c.SourceDir)
	}
	// Backups are <backup_prefix><stamp>; a sample name stands in for them.
	backup := NormalizePath(BackupDirName(c.BackupPrefix, time.Time{}))
	if isWithin(backup, target) {
		return fmt.Errorf("backup_prefix must not be inside target_dir: %s", c.BackupPrefix)
	}
	if isWithin(backup, source) {
		return fmt.Errorf("backup_prefix must not be inside source_dir: %s", c.BackupPrefix)
	}
	return nil
}

// isWithin reports whether p is dir or lies below it. Both are normalized
// root-relative paths; "." contains everything.
func isWithin(p, dir string) bool {
	if dir == "." || p == dir {
		return true
	}
	return strings.HasPrefix(p, dir+"/")
}

func checkRelative(key, p string) error {
	if p == "" {
		return nil
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("%s must be relative to the root: %s", key, p)
	}
	if NormalizePath(p) == ".." || strings.HasPrefix(NormalizePath(p), "../") {
		return fmt.Errorf("%s escapes the root: %s", key, p)
	}
	return nil
}

// MarshalConfig renders cfg as the YAML written by `specmig init`.
func MarshalConfig(cfg Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	header := "# specmig configuration. Paths are relative to this file.\n"
	return append([]byte(header), body...), nil
}

// WriteDefaultConfig writes specmig.yaml with the default layout.
// Fails if the file already exists.
func WriteDefaultConfig(fsys afero.Fs) (string, error) {
	exists, err := afero.Exists(fsys, ConfigFileName)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%s already exists", ConfigFileName)
	}
	data, err := MarshalConfig(DefaultConfig())
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(fsys, ConfigFileName, data, 0o644); err != nil {
		return "", err
	}
	return ConfigFileName, nil
}
