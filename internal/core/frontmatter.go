package core

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the spec metadata fields of a document's YAML header.
// Absent fields are left empty.
type Frontmatter struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title,omitempty"`
	Type           string   `json:"type,omitempty"`
	Parent         string   `json:"parent,omitempty"`
	Status         string   `json:"status,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Created        string   `json:"created,omitempty"`
	Updated        string   `json:"updated,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	ActualHours    *float64 `json:"actual_hours,omitempty"`
}

// frontmatterEnd returns the index of the closing "---" line, or -1 when
// the content does not open with a frontmatter block.
func frontmatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return -1
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i
		}
	}
	return -1
}

// parseFrontmatter decodes the frontmatter block of content.
// ok is false when there is no block or it is not a YAML mapping.
func parseFrontmatter(content string) (fm Frontmatter, ok bool) {
	lines := strings.Split(content, "\n")
	end := frontmatterEnd(lines)
	if end < 1 {
		return Frontmatter{}, false
	}
	yamlContent := strings.Join(lines[1:end], "\n")

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(yamlContent), &doc); err != nil {
		return Frontmatter{}, false
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Frontmatter{}, false
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return Frontmatter{}, false
	}

	for i := 0; i < len(mapping.Content)-1; i += 2 {
		key := mapping.Content[i]
		val := mapping.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			continue
		}
		v := strings.TrimSpace(val.Value)
		switch key.Value {
		case "id":
			fm.ID = v
		case "title":
			fm.Title = v
		case "type":
			fm.Type = strings.ToLower(v)
		case "parent":
			fm.Parent = v
		case "status":
			fm.Status = v
		case "priority":
			fm.Priority = v
		case "created":
			fm.Created = v
		case "updated":
			fm.Updated = v
		case "estimated_hours":
			fm.EstimatedHours = parseHours(v)
		case "actual_hours":
			fm.ActualHours = parseHours(v)
		}
	}
	return fm, true
}

func parseHours(v string) *float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
