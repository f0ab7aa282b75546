package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ErrSourceNotFound is returned when the source root does not exist.
var ErrSourceNotFound = errors.New("source directory not found")

// backupStamp is the timestamp layout appended to the backup prefix.
const backupStamp = "20060102_150405"

// BackupDirName returns the backup directory for a run started at now.
func BackupDirName(prefix string, now time.Time) string {
	return prefix + now.Format(backupStamp)
}

// Backup copies sourceDir from src to a timestamped directory on dst and
// returns the backup path. A missing source is fatal.
func Backup(src afero.Fs, dst afero.Fs, sourceDir, prefix string, now time.Time) (string, error) {
	if !dirExists(src, sourceDir) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}
	backupDir := BackupDirName(prefix, now)
	if err := copyTree(src, sourceDir, dst, backupDir); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return backupDir, nil
}

// LatestBackup returns the most recent backup directory at the root (the
// timestamp layout sorts lexicographically), or "" if there is none.
func LatestBackup(fsys afero.Fs, prefix string) (string, error) {
	dir := parentDir(prefix)
	base := lastElem(prefix)
	if strings.HasSuffix(prefix, "/") {
		dir, base = NormalizePath(prefix), ""
	}
	if dir == "." {
		dir = ""
	}
	infos, err := afero.ReadDir(fsys, dirOrDot(dir))
	if err != nil {
		return "", err
	}
	var found []string
	for _, info := range infos {
		if !info.IsDir() || !strings.HasPrefix(info.Name(), base) {
			continue
		}
		if _, err := time.Parse(backupStamp, strings.TrimPrefix(info.Name(), base)); err != nil {
			continue
		}
		found = append(found, joinRel(dir, info.Name()))
	}
	if len(found) == 0 {
		return "", nil
	}
	sort.Strings(found)
	return found[len(found)-1], nil
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
