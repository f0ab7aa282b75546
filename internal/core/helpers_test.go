package core

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/ryotapoi/specmig/internal/testutil"
)

var fixedNow = time.Date(2025, 8, 25, 14, 30, 5, 0, time.Local)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, testutil.WriteTree(fsys, files))
	return fsys
}

func readString(t *testing.T, fsys afero.Fs, p string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, p)
	require.NoError(t, err)
	return string(data)
}

func newTestMigrator(fsys afero.Fs) *Migrator {
	cfg := DefaultConfig()
	cfg.Ledger = ""
	return &Migrator{
		Src:    fsys,
		Dst:    fsys,
		Config: cfg,
		Logger: discardLogger(),
		Now:    func() time.Time { return fixedNow },
	}
}
