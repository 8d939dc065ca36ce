// Package frontmatter splits YAML frontmatter from Markdown pages and exposes
// the page-level settings the theme reads from it.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// ColorModeField is the frontmatter key that pins a page's color mode.
const ColorModeField = "color_mode"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Page is a Markdown document with its frontmatter decoded.
type Page struct {
	Frontmatter []byte // raw, without delimiters
	Fields      map[string]any
	Body        []byte
}

// Parse splits and decodes content.
func Parse(content []byte) (Page, error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return Page{}, err
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return Page{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	return Page{Frontmatter: fm, Fields: fields, Body: body}, nil
}

// Title returns the title field, or "" when absent.
func (p Page) Title() string {
	s, _ := p.Fields["title"].(string)
	return strings.TrimSpace(s)
}

// ModeProvider exposes the color_mode field as the page's mode provider. A page
// without the field reports an unavailable context; an unrecognized value is
// an error.
func (p Page) ModeProvider() theme.Provider {
	raw, ok := p.Fields[ColorModeField]
	if !ok || raw == nil {
		return theme.Unmounted
	}
	return theme.ProviderFunc(func() (theme.Mode, error) {
		s, isString := raw.(string)
		if !isString {
			return "", fmt.Errorf("frontmatter %s: expected a string, got %T", ColorModeField, raw)
		}
		m, err := theme.ParseModeStrict(s)
		if err != nil {
			return "", fmt.Errorf("frontmatter %s: %w", ColorModeField, err)
		}
		return m, nil
	})
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
