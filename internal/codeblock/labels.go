package codeblock

import (
	"maps"
	"slices"
	"strings"
)

var defaultLanguageLabels = map[string]string{
	"js":         "JavaScript",
	"javascript": "JavaScript",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"tsx":        "TypeScript",
	"json":       "JSON",
	"sh":         "Shell",
	"bash":       "Shell",
	"shell":      "Shell",
	"md":         "Markdown",
	"mdx":        "MDX",
	"py":         "Python",
	"python":     "Python",
	"go":         "Go",
	"java":       "Java",
	"csharp":     "C#",
	"cs":         "C#",
	"yaml":       "YAML",
	"yml":        "YAML",
	"dockerfile": "Dockerfile",
	"sql":        "SQL",
	"html":       "HTML",
	"css":        "CSS",
	"scss":       "SCSS",
	"rust":       "Rust",
}

// Labels maps lowercased language tags to badge labels. It is immutable.
type Labels struct {
	table map[string]string
}

// DefaultLabels returns the built-in label table.
func DefaultLabels() Labels {
	return NewLabels(nil)
}

// NewLabels returns the built-in table extended (or overridden) by extra.
func NewLabels(extra map[string]string) Labels {
	table := maps.Clone(defaultLanguageLabels)
	for tag, label := range extra {
		table[strings.ToLower(strings.TrimSpace(tag))] = label
	}
	return Labels{table: table}
}

// Label returns the badge text for tag: the table entry, else the tag uppercased.
// An empty tag has no label.
func (l Labels) Label(tag string) string {
	if tag == "" {
		return ""
	}
	if label, ok := l.table[strings.ToLower(tag)]; ok {
		return label
	}
	return strings.ToUpper(tag)
}

// Tags lists the tags with an explicit label.
func (l Labels) Tags() []string {
	return slices.Sorted(maps.Keys(l.table))
}
