package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// IndexFileName is the navigation index written at the target root.
const IndexFileName = "index.md"

var titleIDPrefix = regexp.MustCompile(`^\d+\s*[-:]\s*`)

// ExtractTitle returns the first "# " heading of the file, skipping a YAML
// frontmatter block, with a leading "<id> - " or "<id>: " removed.
// Falls back to the file stem when there is no heading or the file is
// unreadable.
func ExtractTitle(fsys afero.Fs, p string) string {
	data, err := afero.ReadFile(fsys, p)
	if err != nil {
		return stem(p)
	}
	if title, ok := headingTitle(string(data)); ok {
		return title
	}
	return stem(p)
}

func headingTitle(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	start := 0
	if end := frontmatterEnd(lines); end > 0 {
		start = end + 1
	}
	for _, line := range lines[start:] {
		if strings.HasPrefix(line, "# ") {
			title := strings.TrimSpace(line[2:])
			return titleIDPrefix.ReplaceAllString(title, ""), true
		}
	}
	return "", false
}

// BuildIndex renders the navigation index of an ID-only target tree:
// epics in ID order, each followed by its features, their tasks and its
// standalone features. Epics without epic.md are left out.
func BuildIndex(fsys afero.Fs, targetDir, title string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	b.WriteString("## Epic Overview\n")

	epics, err := matchEntries(fsys, targetDir, "*", true)
	if err != nil {
		return "", err
	}
	for _, epicDir := range epics {
		epicID := lastElem(epicDir)
		epicFile := joinRel(epicDir, "epic.md")
		if !isDigits(epicID) || !fileExists(fsys, epicFile) {
			continue
		}
		fmt.Fprintf(&b, "\n### [%s - %s](%s/epic)\n", epicID, ExtractTitle(fsys, epicFile), epicID)

		items, err := afero.ReadDir(fsys, epicDir)
		if err != nil {
			return "", err
		}
		for _, item := range items {
			name := item.Name()
			switch {
			case item.IsDir() && isDigits(name):
				featureSpec := joinRel(epicDir, name, "spec.md")
				if !fileExists(fsys, featureSpec) {
					continue
				}
				fmt.Fprintf(&b, "- [%s - %s](%s/%s/spec)\n", name, ExtractTitle(fsys, featureSpec), epicID, name)
				if err := writeTaskEntries(&b, fsys, epicID, name, joinRel(epicDir, name)); err != nil {
					return "", err
				}
			case !item.IsDir() && strings.HasSuffix(name, ".md") && isDigits(stem(name)):
				featureID := stem(name)
				fmt.Fprintf(&b, "- [%s - %s](%s/%s)\n", featureID, ExtractTitle(fsys, joinRel(epicDir, name)), epicID, featureID)
			}
		}
	}
	return b.String(), nil
}

func writeTaskEntries(b *strings.Builder, fsys afero.Fs, epicID, featureID, featureDir string) error {
	files, err := matchEntries(fsys, featureDir, "*.md", false)
	if err != nil {
		return err
	}
	for _, f := range files {
		name := lastElem(f)
		if name == "spec.md" || isContextName(name) {
			continue
		}
		taskID := stem(name)
		fmt.Fprintf(b, "  - [%s - %s](%s/%s/%s)\n", taskID, ExtractTitle(fsys, f), epicID, featureID, taskID)
	}
	return nil
}

// WriteIndex writes index.md at the target root and returns its path.
func WriteIndex(fsys afero.Fs, targetDir, title string) (string, error) {
	content, err := BuildIndex(fsys, targetDir, title)
	if err != nil {
		return "", err
	}
	p := joinRel(targetDir, IndexFileName)
	if err := afero.WriteFile(fsys, p, []byte(content), 0o644); err != nil {
		return "", err
	}
	return p, nil
}
