// Package codeblock renders fenced code as themed, line-numbered presentational
// trees (golang.org/x/net/html nodes) and as styled terminal text.
//
// The flow is one-directional: Metadata and a resolved theme.Mode form a
// RenderContext; the highlight adapter turns the code into token lines; the
// Renderer lays those out as rows; the Composer wraps them with header and
// controls, or falls back to the unthemed Baseline when no context exists.
package codeblock

import (
	"fmt"
	"slices"

	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// HighlightedLineClass marks lines selected by {ranges} or magic comments.
const HighlightedLineClass = "theme-code-block-highlighted-line"

// Metadata describes one code block. Renderers treat it as read-only.
type Metadata struct {
	Code      string
	Language  string // empty when absent
	Title     string // empty when absent
	ClassName string // extra container class from the fence

	// LineNumbersStart is nil when numbering is off.
	LineNumbersStart *int

	// LineClassNames maps 0-based line indexes to extra row classes.
	LineClassNames map[int][]string
}

// ShowLineNumbers reports whether rows carry visible numbers.
func (m Metadata) ShowLineNumbers() bool { return m.LineNumbersStart != nil }

// LineNumber returns the visible number of the 0-based line i.
func (m Metadata) LineNumber(i int) int {
	if m.LineNumbersStart == nil {
		return i + 1
	}
	return *m.LineNumbersStart + i
}

func (m Metadata) clone() Metadata {
	out := m
	if m.LineNumbersStart != nil {
		start := *m.LineNumbersStart
		out.LineNumbersStart = &start
	}
	if m.LineClassNames != nil {
		out.LineClassNames = make(map[int][]string, len(m.LineClassNames))
		for i, classes := range m.LineClassNames {
			out.LineClassNames[i] = slices.Clone(classes)
		}
	}
	return out
}

// StartAt returns a pointer for Metadata.LineNumbersStart.
func StartAt(n int) *int { return &n }

// ErrContextUnavailable is reported by probes when a block has no render context.
var ErrContextUnavailable = fmt.Errorf("codeblock: called outside the <CodeBlockContextProvider>: %w", theme.ErrContextUnavailable)

// RenderContext carries everything a code block needs for one render pass.
// It is built once per block and never modified afterwards.
type RenderContext struct {
	mode     theme.Mode
	metadata Metadata
}

// NewRenderContext snapshots meta together with the resolved mode.
func NewRenderContext(meta Metadata, mode theme.Mode) *RenderContext {
	return &RenderContext{mode: theme.ParseMode(string(mode)), metadata: meta.clone()}
}

// Mode returns the mode resolved for this render pass.
func (c *RenderContext) Mode() theme.Mode { return c.mode }

// Metadata returns a copy of the block metadata.
func (c *RenderContext) Metadata() Metadata { return c.metadata.clone() }

// Probe returns the context or ErrContextUnavailable when c is nil.
func (c *RenderContext) Probe() (*RenderContext, error) {
	if c == nil {
		return nil, ErrContextUnavailable
	}
	return c, nil
}
