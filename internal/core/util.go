package core

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var leadingID = regexp.MustCompile(`^(\d+)`)

// NormalizePath cleans a root-relative path: forward slashes, no leading "./".
func NormalizePath(p string) string {
	clean := filepath.ToSlash(filepath.Clean(p))
	return strings.TrimPrefix(clean, "./")
}

// ExtractID returns the leading numeric prefix of a file or directory name.
// Returns "" when the name does not start with a digit.
func ExtractID(name string) string {
	m := leadingID.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// stem returns the base name without its final extension ("1014.md" → "1014").
func stem(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func lastElem(p string) string {
	return path.Base(filepath.ToSlash(p))
}

func parentDir(p string) string {
	return path.Dir(filepath.ToSlash(p))
}

// joinRel joins slash-separated root-relative path elements.
func joinRel(elem ...string) string {
	return path.Join(elem...)
}

// isContextName reports whether a target-tree file name holds context notes.
func isContextName(name string) bool {
	return name == "context.md" || strings.HasSuffix(name, ".context.md")
}
