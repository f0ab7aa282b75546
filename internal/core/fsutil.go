package core

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// writeFilePreservePerm writes data to p with the given permission bits.
// WriteFile applies umask on file creation, so Chmod is called to
// ensure the exact permission bits are set.
func writeFilePreservePerm(fsys afero.Fs, p string, data []byte, perm os.FileMode) error {
	if err := afero.WriteFile(fsys, p, data, perm); err != nil {
		return err
	}
	return fsys.Chmod(p, perm)
}

// copyFile copies one file between filesystems, keeping its permission bits
// and modification time.
func copyFile(src afero.Fs, from string, dst afero.Fs, to string) error {
	info, err := src.Stat(from)
	if err != nil {
		return err
	}
	data, err := afero.ReadFile(src, from)
	if err != nil {
		return err
	}
	if err := dst.MkdirAll(path.Dir(to), 0o755); err != nil {
		return err
	}
	if err := writeFilePreservePerm(dst, to, data, info.Mode().Perm()); err != nil {
		return err
	}
	return dst.Chtimes(to, info.ModTime(), info.ModTime())
}

// copyTree recursively copies the directory fromDir on src to toDir on dst.
// toDir must not exist yet.
func copyTree(src afero.Fs, fromDir string, dst afero.Fs, toDir string) error {
	if exists, err := afero.Exists(dst, toDir); err != nil {
		return err
	} else if exists {
		return &os.PathError{Op: "copy", Path: toDir, Err: os.ErrExist}
	}
	return afero.Walk(src, fromDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(fromDir, p)
		if err != nil {
			return err
		}
		out := joinRel(toDir, filepath.ToSlash(rel))
		if info.IsDir() {
			return dst.MkdirAll(out, info.Mode().Perm()|0o700)
		}
		return copyFile(src, p, dst, out)
	})
}

// collectMarkdownFiles returns every .md file under dir in lexicographic
// walk order, as slash-separated paths including dir.
func collectMarkdownFiles(fsys afero.Fs, dir string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(info.Name()), ".md") {
			files = append(files, NormalizePath(p))
		}
		return nil
	})
	return files, err
}

// matchEntries lists the entries of dir whose names match pattern, in name
// order. dirs selects directories (true) or regular files (false).
// A missing dir yields no entries.
func matchEntries(fsys afero.Fs, dir, pattern string, dirs bool) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, info := range infos {
		if info.IsDir() != dirs {
			continue
		}
		ok, err := path.Match(pattern, info.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, joinRel(dir, info.Name()))
		}
	}
	return out, nil
}

func fileExists(fsys afero.Fs, p string) bool {
	info, err := fsys.Stat(p)
	return err == nil && !info.IsDir()
}

func dirExists(fsys afero.Fs, p string) bool {
	ok, err := afero.DirExists(fsys, p)
	return err == nil && ok
}
