package core

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Migrator runs the migration pipeline against a workspace root.
// Src is read from (source tree, context dirs); Dst receives the backup,
// the target tree and the reports. Both use root-relative paths.
type Migrator struct {
	Src    afero.Fs
	Dst    afero.Fs
	Config Config
	// Ledger records finished runs. nil disables recording.
	Ledger *Ledger
	Logger *log.Logger
	Now    func() time.Time
}

// NewMigrator returns a migrator that reads and writes the directory root
// on disk.
func NewMigrator(root string, cfg Config) *Migrator {
	base := afero.NewBasePathFs(afero.NewOsFs(), root)
	return &Migrator{Src: base, Dst: base, Config: cfg}
}

// MigrateOptions controls one run.
type MigrateOptions struct {
	// DryRun reads through a read-only view of Src and sends every write
	// to a fresh in-memory filesystem. Nothing is recorded.
	DryRun bool
}

// MigrateResult reports the outcome of a run.
type MigrateResult struct {
	RunID        string
	DryRun       bool
	BackupDir    string
	TargetDir    string
	IndexFile    string
	ReportFile   string
	MappingsFile string
	Journal      *Journal
	Contexts     int
	Updated      []string
	Stats        MigrationStats
	Report       string
}

// Run executes backup, analyze, build, context merge, link rewrite, index,
// report and ledger recording, in that order. The first error stops the
// run; the target tree is left as it is and only the backup is safe.
// Re-running wipes the target, so manual edits there are lost.
func (m *Migrator) Run(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	if err := m.Config.Validate(); err != nil {
		return nil, err
	}
	logger := m.logger()
	now := m.now()
	src, dst := m.Src, m.Dst
	if opts.DryRun {
		src = afero.NewReadOnlyFs(m.Src)
		dst = afero.NewMemMapFs()
	}
	started := now()
	cfg := m.Config
	j := &Journal{}
	res := &MigrateResult{
		RunID:        uuid.NewString(),
		DryRun:       opts.DryRun,
		TargetDir:    cfg.TargetDir,
		ReportFile:   cfg.ReportFile,
		MappingsFile: cfg.MappingsFile,
		Journal:      j,
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"backup", func() error {
			logger.Info("Creating backup", "source", cfg.SourceDir)
			dir, err := Backup(src, dst, cfg.SourceDir, cfg.BackupPrefix, started)
			if err != nil {
				return err
			}
			res.BackupDir = dir
			logger.Info("Backup created", "path", dir)
			return nil
		}},
		{"build", func() error {
			logger.Info("Analyzing current structure")
			s, err := Analyze(src, cfg.SourceDir)
			if err != nil {
				return err
			}
			logger.Info("Structure analyzed", "epics", len(s.Epics), "files", s.FileCount())
			logger.Info("Creating new structure", "target", cfg.TargetDir)
			if err := BuildStructure(src, dst, s, cfg.TargetDir, j, logger); err != nil {
				return err
			}
			logger.Info("Files migrated", "count", len(j.Log))
			return nil
		}},
		{"contexts", func() error {
			logger.Info("Migrating context files")
			n, err := MergeContexts(src, dst, cfg.ContextDirs, cfg.TargetDir, j, logger)
			if err != nil {
				return err
			}
			res.Contexts = n
			logger.Info("Context files migrated", "count", n)
			return nil
		}},
		{"links", func() error {
			logger.Info("Updating internal links")
			rw, err := RewriteTree(dst, cfg.TargetDir)
			if err != nil {
				return err
			}
			res.Updated = rw.Updated
			logger.Info("Links updated", "files", len(rw.Updated))
			return nil
		}},
		{"index", func() error {
			logger.Info("Creating index file")
			p, err := WriteIndex(dst, cfg.TargetDir, cfg.IndexTitle)
			if err != nil {
				return err
			}
			res.IndexFile = p
			logger.Info("Index created", "path", p)
			return nil
		}},
		{"report", func() error {
			logger.Info("Generating report")
			stats, err := Stats(dst, cfg.TargetDir, StatsOptions{})
			if err != nil {
				return err
			}
			res.Stats = *stats
			d := ReportData{
				Generated: now(),
				SourceDir: cfg.SourceDir,
				TargetDir: cfg.TargetDir,
				BackupDir: res.BackupDir,
				Stats:     *stats,
				Journal:   j,
			}
			res.Report = RenderReport(d)
			if err := WriteReport(dst, cfg.ReportFile, cfg.MappingsFile, d); err != nil {
				return err
			}
			logger.Info("Report saved", "report", cfg.ReportFile, "mappings", cfg.MappingsFile)
			return nil
		}},
		{"record", func() error {
			if opts.DryRun || m.Ledger == nil {
				return nil
			}
			return m.Ledger.RecordRun(ctx, RunRecord{
				ID:        res.RunID,
				StartedAt: started,
				EndedAt:   now(),
				SourceDir: cfg.SourceDir,
				TargetDir: cfg.TargetDir,
				BackupDir: res.BackupDir,
				Updated:   len(res.Updated),
				Stats:     res.Stats,
			}, j)
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return res, nil
}

// LedgerPath resolves the configured ledger against root. Returns "" when
// recording is disabled.
func LedgerPath(root string, cfg Config) string {
	if cfg.Ledger == "" {
		return ""
	}
	return filepath.Join(root, filepath.FromSlash(cfg.Ledger))
}

func (m *Migrator) logger() *log.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return log.New(io.Discard)
}

func (m *Migrator) now() func() time.Time {
	if m.Now != nil {
		return m.Now
	}
	return time.Now
}
