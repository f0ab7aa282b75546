package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	dataDirName    = ".specmig"
	ledgerFileName = "ledger.sqlite"
)

// ErrRunNotFound is returned when a run ID is not in the ledger.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is one migration run stored in the ledger.
type RunRecord struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	SourceDir string
	TargetDir string
	BackupDir string
	Updated   int // files whose links were rewritten
	Stats     MigrationStats
}

// Ledger is the sqlite history of migration runs.
type Ledger struct {
	db *sql.DB
}

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

// OpenLedger opens (creating if needed) the ledger database at path.
func OpenLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := openDBAt(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			started_at  INTEGER NOT NULL,
			ended_at    INTEGER NOT NULL,
			source_dir  TEXT NOT NULL,
			target_dir  TEXT NOT NULL,
			backup_dir  TEXT NOT NULL,
			updated     INTEGER NOT NULL DEFAULT 0,
			epics       INTEGER NOT NULL DEFAULT 0,
			features    INTEGER NOT NULL DEFAULT 0,
			tasks       INTEGER NOT NULL DEFAULT 0,
			contexts    INTEGER NOT NULL DEFAULT 0,
			total_files INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);`,
		`CREATE TABLE IF NOT EXISTS mappings (
			run_id   TEXT NOT NULL,
			seq      INTEGER NOT NULL,
			old_path TEXT NOT NULL,
			new_path TEXT NOT NULL,
			PRIMARY KEY (run_id, seq),
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);`,
		`CREATE TABLE IF NOT EXISTS log_entries (
			run_id  TEXT NOT NULL,
			seq     INTEGER NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (run_id, seq),
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun stores a run with its mappings and log in one transaction.
func (l *Ledger) RecordRun(ctx context.Context, run RunRecord, j *Journal) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, ended_at, source_dir, target_dir, backup_dir, updated,
		                   epics, features, tasks, contexts, total_files)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.Unix(), run.EndedAt.Unix(), run.SourceDir, run.TargetDir, run.BackupDir, run.Updated,
		run.Stats.Epics, run.Stats.Features, run.Stats.Tasks, run.Stats.Contexts, run.Stats.TotalFiles,
	)
	if err != nil {
		return err
	}
	for i, m := range j.Mappings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mappings (run_id, seq, old_path, new_path) VALUES (?, ?, ?, ?)`,
			run.ID, i, m.Old, m.New); err != nil {
			return err
		}
	}
	for i, msg := range j.Log {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO log_entries (run_id, seq, message) VALUES (?, ?, ?)`,
			run.ID, i, msg); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const runColumns = `id, started_at, ended_at, source_dir, target_dir, backup_dir, updated,
	epics, features, tasks, contexts, total_files`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var r RunRecord
	var started, ended int64
	err := row.Scan(&r.ID, &started, &ended, &r.SourceDir, &r.TargetDir, &r.BackupDir, &r.Updated,
		&r.Stats.Epics, &r.Stats.Features, &r.Stats.Tasks, &r.Stats.Contexts, &r.Stats.TotalFiles)
	if err != nil {
		return RunRecord{}, err
	}
	r.StartedAt = time.Unix(started, 0)
	r.EndedAt = time.Unix(ended, 0)
	return r, nil
}

// ListRuns returns every run, newest first.
func (l *Ledger) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run returns one run by ID.
func (l *Ledger) Run(ctx context.Context, id string) (RunRecord, error) {
	r, err := scanRun(l.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// LatestRun returns the most recent run.
func (l *Ledger) LatestRun(ctx context.Context) (RunRecord, error) {
	r, err := scanRun(l.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`))
	if err == sql.ErrNoRows {
		return RunRecord{}, fmt.Errorf("%w: ledger is empty", ErrRunNotFound)
	}
	return r, err
}

// RunJournal returns the mappings and log lines of a run in recorded order.
func (l *Ledger) RunJournal(ctx context.Context, id string) (*Journal, error) {
	if _, err := l.Run(ctx, id); err != nil {
		return nil, err
	}
	j := &Journal{}
	rows, err := l.db.QueryContext(ctx, `SELECT old_path, new_path FROM mappings WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.Old, &m.New); err != nil {
			return nil, err
		}
		j.Mappings = append(j.Mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logRows, err := l.db.QueryContext(ctx, `SELECT message FROM log_entries WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer logRows.Close()
	for logRows.Next() {
		var msg string
		if err := logRows.Scan(&msg); err != nil {
			return nil, err
		}
		j.Log = append(j.Log, msg)
	}
	return j, logRows.Err()
}
