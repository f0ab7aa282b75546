package core

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"
)

// rewriteRule is one substitution of the link rewriter.
type rewriteRule struct {
	name        string
	pattern     *regexp2.Regexp
	replacement string
}

func mustRule(name, pattern, replacement string) rewriteRule {
	return rewriteRule{name: name, pattern: regexp2.MustCompile(pattern, regexp2.None), replacement: replacement}
}

// linkRules run strictly in this order: the later rules assume the earlier
// ones already collapsed directory-qualified names.
// The epic and feature rules need a backreference, which RE2 lacks.
var linkRules = []rewriteRule{
	// [[../1000-epic-x/1000-epic-x.spec.md → [[../1000/epic
	mustRule("epic-link", `\[\[\.\./(\d+)-epic-[^/]*/\1[^\]]*\.spec\.md`, `[[../${1}/epic`),
	// [[../1001-feature-x/1001-feature-x.spec.md → [[../1001/spec
	mustRule("feature-link", `\[\[\.\./(\d+)-feature-[^/]*/\1[^\]]*\.spec\.md`, `[[../${1}/spec`),
	// [[1014-task-x.spec.md → [[1014
	mustRule("task-link", `\[\[(\d{4})-task-[^\]]*\.spec\.md`, `[[${1}`),
	mustRule("spec-extension", `\.spec\.md([|\]])`, `${1}`),
	mustRule("epic-segment", `(\d{4})-epic-[^/\]]+/`, `${1}/`),
	mustRule("feature-segment", `(\d{4})-feature-[^/\]]+/`, `${1}/`),
	mustRule("task-segment", `(\d{4})-task-[^/\]]+`, `${1}`),
	// Plain-text source references outside links.
	mustRule("epic-source-path", `specs/(\d+)-epic-[^/]+/`, `specs/${1}/`),
	mustRule("feature-source-path", `specs/(\d+)-feature-[^/]+/`, `specs/${1}/`),
}

// RewriteLinks applies every link rule to content, in order.
func RewriteLinks(content string) (string, error) {
	out := content
	for _, rule := range linkRules {
		next, err := rule.pattern.Replace(out, rule.replacement, -1, -1)
		if err != nil {
			return "", fmt.Errorf("rewrite %s: %w", rule.name, err)
		}
		out = next
	}
	return out, nil
}

// RewriteResult lists the files whose content changed.
type RewriteResult struct {
	Updated []string
}

// RewriteTree rewrites the internal links of every .md file under dir.
// A file is written back only when its content changed, keeping its
// permission bits.
func RewriteTree(fsys afero.Fs, dir string) (*RewriteResult, error) {
	files, err := collectMarkdownFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	result := &RewriteResult{}
	for _, f := range files {
		changed, err := rewriteFile(fsys, f)
		if err != nil {
			return nil, err
		}
		if changed {
			result.Updated = append(result.Updated, f)
		}
	}
	return result, nil
}

func rewriteFile(fsys afero.Fs, p string) (bool, error) {
	info, err := fsys.Stat(p)
	if err != nil {
		return false, err
	}
	data, err := afero.ReadFile(fsys, p)
	if err != nil {
		return false, err
	}
	original := string(data)
	updated, err := RewriteLinks(original)
	if err != nil {
		return false, fmt.Errorf("%s: %w", p, err)
	}
	if updated == original {
		return false, nil
	}
	if err := writeFilePreservePerm(fsys, p, []byte(updated), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
