package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// MappingsDocument is the machine-readable migration record
// (migration-mappings.json).
type MappingsDocument struct {
	Mappings LinkMappings   `json:"mappings"`
	Log      []string       `json:"log"`
	Stats    MigrationStats `json:"stats"`
}

// ReportData is everything the prose report mentions.
type ReportData struct {
	Generated time.Time
	SourceDir string
	TargetDir string
	BackupDir string
	Stats     MigrationStats
	Journal   *Journal
}

// RenderReport renders migration-report.md.
func RenderReport(d ReportData) string {
	var b strings.Builder
	b.WriteString("# Migration Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", d.Generated.Format("2006-01-02 15:04:05"))

	b.WriteString("## Statistics\n")
	fmt.Fprintf(&b, "- Epics: %d\n", d.Stats.Epics)
	fmt.Fprintf(&b, "- Features: %d\n", d.Stats.Features)
	fmt.Fprintf(&b, "- Tasks: %d\n", d.Stats.Tasks)
	fmt.Fprintf(&b, "- Context Files: %d\n", d.Stats.Contexts)
	fmt.Fprintf(&b, "- Total Files: %d\n\n", d.Stats.TotalFiles)

	b.WriteString("## Directories\n")
	fmt.Fprintf(&b, "- Source: %s\n", d.SourceDir)
	fmt.Fprintf(&b, "- Target: %s\n", d.TargetDir)
	fmt.Fprintf(&b, "- Backup: %s\n\n", d.BackupDir)

	b.WriteString("## Migration Log\n")
	fmt.Fprintf(&b, "Total files migrated: %d\n\n", len(d.Journal.Log))

	b.WriteString("## To Apply Migration\n")
	b.WriteString("```bash\n")
	b.WriteString("# Review the new structure\n")
	fmt.Fprintf(&b, "ls -la %s/\n\n", d.TargetDir)
	b.WriteString("# If satisfied, apply (or run: specmig promote):\n")
	fmt.Fprintf(&b, "mv %s %s_old\n", d.SourceDir, d.SourceDir)
	fmt.Fprintf(&b, "mv %s %s\n\n", d.TargetDir, d.SourceDir)
	b.WriteString("# To rollback (or run: specmig rollback --force):\n")
	fmt.Fprintf(&b, "cp -r %s %s\n", d.BackupDir, d.SourceDir)
	b.WriteString("```\n\n")

	b.WriteString("## Link Mappings\n")
	fmt.Fprintf(&b, "%d file paths updated\n", len(d.Journal.Mappings))
	return b.String()
}

// MarshalMappings renders migration-mappings.json.
func MarshalMappings(j *Journal, stats MigrationStats) ([]byte, error) {
	doc := MappingsDocument{
		Mappings: j.Mappings,
		Log:      j.Log,
		Stats:    stats,
	}
	if doc.Mappings == nil {
		doc.Mappings = LinkMappings{}
	}
	if doc.Log == nil {
		doc.Log = []string{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteReport writes the prose report to reportFile and the mappings
// document to mappingsFile.
func WriteReport(fsys afero.Fs, reportFile, mappingsFile string, d ReportData) error {
	if err := afero.WriteFile(fsys, reportFile, []byte(RenderReport(d)), 0o644); err != nil {
		return err
	}
	data, err := MarshalMappings(d.Journal, d.Stats)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, mappingsFile, data, 0o644)
}

// ReadMappings loads a migration-mappings.json file.
func ReadMappings(fsys afero.Fs, mappingsFile string) (*MappingsDocument, error) {
	data, err := afero.ReadFile(fsys, mappingsFile)
	if err != nil {
		return nil, err
	}
	var doc MappingsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", mappingsFile, err)
	}
	return &doc, nil
}
