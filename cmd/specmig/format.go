package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ryotapoi/specmig/internal/core"
	"github.com/ryotapoi/specmig/internal/ui"
)

// parseFields splits a comma-separated field string into a slice.
// Returns nil for empty input.
func parseFields(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateFormat checks that format is "json" or "text".
func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %q (must be json or text)", format)
	}
	return nil
}

// fieldSet returns a set of fields to show. If fields is nil/empty, all fields are shown.
func fieldSet(fields []string, all []string) map[string]bool {
	if len(fields) == 0 {
		fields = all
	}
	m := make(map[string]bool, len(fields))
	for _, f := range fields {
		m[f] = true
	}
	return m
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- Stats output ---

func statsValues(s core.MigrationStats) map[string]int {
	return map[string]int{
		"epics":       s.Epics,
		"features":    s.Features,
		"tasks":       s.Tasks,
		"contexts":    s.Contexts,
		"total_files": s.TotalFiles,
	}
}

func printStatsJSON(w io.Writer, s *core.MigrationStats, fields []string) error {
	show := fieldSet(fields, core.StatsFields)
	m := make(map[string]int)
	for k, v := range statsValues(*s) {
		if show[k] {
			m[k] = v
		}
	}
	return writeJSON(w, m)
}

func printStatsText(w io.Writer, s *core.MigrationStats, fields []string) error {
	show := fieldSet(fields, core.StatsFields)
	values := statsValues(*s)
	for _, k := range core.StatsFields {
		if show[k] {
			fmt.Fprintf(w, "%s: %d\n", k, values[k])
		}
	}
	return nil
}

// --- Migrate output ---

type jsonMigrateResult struct {
	RunID        string              `json:"run_id"`
	DryRun       bool                `json:"dry_run"`
	BackupDir    string              `json:"backup_dir"`
	TargetDir    string              `json:"target_dir"`
	IndexFile    string              `json:"index_file"`
	ReportFile   string              `json:"report_file"`
	MappingsFile string              `json:"mappings_file"`
	Updated      []string            `json:"updated"`
	Stats        core.MigrationStats `json:"stats"`
	Mappings     core.LinkMappings   `json:"mappings"`
	Log          []string            `json:"log"`
}

func printMigrateJSON(w io.Writer, r *core.MigrateResult) error {
	out := jsonMigrateResult{
		RunID:        r.RunID,
		DryRun:       r.DryRun,
		BackupDir:    r.BackupDir,
		TargetDir:    r.TargetDir,
		IndexFile:    r.IndexFile,
		ReportFile:   r.ReportFile,
		MappingsFile: r.MappingsFile,
		Updated:      r.Updated,
		Stats:        r.Stats,
		Mappings:     r.Journal.Mappings,
		Log:          r.Journal.Log,
	}
	if out.Updated == nil {
		out.Updated = []string{}
	}
	if out.Mappings == nil {
		out.Mappings = core.LinkMappings{}
	}
	if out.Log == nil {
		out.Log = []string{}
	}
	return writeJSON(w, out)
}

func printMigrateText(w io.Writer, r *core.MigrateResult) error {
	if !r.DryRun {
		fmt.Fprintf(w, "run: %s\n", r.RunID)
	}
	fmt.Fprintf(w, "backup: %s\n", r.BackupDir)
	fmt.Fprintf(w, "target: %s\n", r.TargetDir)
	fmt.Fprintf(w, "index: %s\n", r.IndexFile)
	fmt.Fprintf(w, "report: %s\n", r.ReportFile)
	fmt.Fprintf(w, "mappings: %s\n", r.MappingsFile)
	fmt.Fprintf(w, "links_updated: %d\n", len(r.Updated))
	return printStatsText(w, &r.Stats, nil)
}

// --- History output ---

type jsonRun struct {
	ID        string              `json:"id"`
	StartedAt time.Time           `json:"started_at"`
	EndedAt   time.Time           `json:"ended_at"`
	SourceDir string              `json:"source_dir"`
	TargetDir string              `json:"target_dir"`
	BackupDir string              `json:"backup_dir"`
	Updated   int                 `json:"updated"`
	Stats     core.MigrationStats `json:"stats"`
}

func toJSONRun(r core.RunRecord) jsonRun {
	return jsonRun{
		ID:        r.ID,
		StartedAt: r.StartedAt.UTC(),
		EndedAt:   r.EndedAt.UTC(),
		SourceDir: r.SourceDir,
		TargetDir: r.TargetDir,
		BackupDir: r.BackupDir,
		Updated:   r.Updated,
		Stats:     r.Stats,
	}
}

func printRunsJSON(w io.Writer, runs []core.RunRecord) error {
	out := make([]jsonRun, 0, len(runs))
	for _, r := range runs {
		out = append(out, toJSONRun(r))
	}
	return writeJSON(w, out)
}

func printRunsText(w io.Writer, runs []core.RunRecord, now time.Time) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			humanize.RelTime(r.StartedAt, now, "ago", "from now"),
			r.BackupDir,
			strconv.Itoa(r.Stats.Epics),
			strconv.Itoa(r.Stats.Features),
			strconv.Itoa(r.Stats.Tasks),
			strconv.Itoa(r.Stats.Contexts),
		})
	}
	ui.Table(w, []string{"RUN", "STARTED", "BACKUP", "EPICS", "FEATURES", "TASKS", "CONTEXTS"}, rows)
	return nil
}

type jsonRunDetail struct {
	jsonRun
	Mappings core.LinkMappings `json:"mappings"`
	Log      []string          `json:"log"`
}

func printRunJSON(w io.Writer, r core.RunRecord, j *core.Journal) error {
	out := jsonRunDetail{jsonRun: toJSONRun(r), Mappings: j.Mappings, Log: j.Log}
	if out.Mappings == nil {
		out.Mappings = core.LinkMappings{}
	}
	if out.Log == nil {
		out.Log = []string{}
	}
	return writeJSON(w, out)
}

func printRunText(w io.Writer, r core.RunRecord, j *core.Journal) error {
	fmt.Fprintf(w, "run: %s\n", r.ID)
	fmt.Fprintf(w, "started: %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "duration: %s\n", r.EndedAt.Sub(r.StartedAt))
	fmt.Fprintf(w, "source: %s\n", r.SourceDir)
	fmt.Fprintf(w, "target: %s\n", r.TargetDir)
	fmt.Fprintf(w, "backup: %s\n", r.BackupDir)
	fmt.Fprintf(w, "links_updated: %d\n", r.Updated)
	if err := printStatsText(w, &r.Stats, nil); err != nil {
		return err
	}
	if len(j.Log) > 0 {
		fmt.Fprintln(w, "log:")
		for _, line := range j.Log {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// --- Inventory output ---

func printInventoryText(w io.Writer, inv *core.Inventory) error {
	st := inv.Stats
	fmt.Fprintf(w, "specs: %d\n", len(inv.Specs))
	fmt.Fprintf(w, "epics: %d\n", st.TotalEpics)
	fmt.Fprintf(w, "features: %d\n", st.TotalFeatures)
	fmt.Fprintf(w, "tasks: %d\n", st.TotalTasks)
	writeIDList(w, "completed", st.Completed)
	writeIDList(w, "in_progress", st.InProgress)
	writeIDList(w, "draft", st.Draft)
	writeIDList(w, "blocked", st.Blocked)
	return nil
}

func writeIDList(w io.Writer, label string, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintf(w, "%s: 0\n", label)
		return
	}
	fmt.Fprintf(w, "%s: %d (%s)\n", label, len(ids), strings.Join(ids, ", "))
}
