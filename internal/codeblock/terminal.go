package codeblock

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/doctheme/internal/highlight"
)

// Terminal renders the same token lines as the HTML renderer, styled for a
// terminal with lipgloss.
type Terminal struct {
	highlighter *highlight.Highlighter
	labels      Labels
	renderer    *lipgloss.Renderer
}

// NewTerminal returns a terminal renderer whose color profile follows out.
func NewTerminal(h *highlight.Highlighter, labels Labels, out io.Writer) *Terminal {
	return &Terminal{highlighter: h, labels: labels, renderer: lipgloss.NewRenderer(out)}
}

// Render draws the block for ctx. Without a context raw is returned as-is.
func (t *Terminal) Render(ctx *RenderContext, raw string) string {
	if ctx == nil {
		return raw
	}
	meta := ctx.metadata
	tokens := t.highlighter.Tokenize(meta.Code, meta.Language, ctx.mode)
	label := t.labels.Label(meta.Language)

	var b strings.Builder
	if meta.Title != "" || label != "" {
		titleStyle := t.renderer.NewStyle().Bold(true)
		badgeStyle := t.renderer.NewStyle().Reverse(true).Padding(0, 1)
		parts := make([]string, 0, 2)
		if meta.Title != "" {
			parts = append(parts, titleStyle.Render(meta.Title))
		}
		if label != "" {
			parts = append(parts, badgeStyle.Render(label))
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
	}

	gutterWidth := 0
	if meta.ShowLineNumbers() {
		gutterWidth = len(strconv.Itoa(meta.LineNumber(len(tokens) - 1)))
	}
	gutter := t.renderer.NewStyle().Faint(true)
	rows := make([]string, len(tokens))
	for i, line := range tokens {
		var row strings.Builder
		if slices.Contains(meta.LineClassNames[i], HighlightedLineClass) {
			row.WriteString("▌")
		} else {
			row.WriteString(" ")
		}
		if gutterWidth > 0 {
			row.WriteString(gutter.Render(fmt.Sprintf("%*d │", gutterWidth, meta.LineNumber(i))))
			row.WriteString(" ")
		}
		for _, tok := range line {
			row.WriteString(t.tokenStyle(tok.Style).Render(tok.Text))
		}
		rows[i] = row.String()
	}

	box := t.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.highlighter.Palette(ctx.mode).Base().Color))
	b.WriteString(box.Render(strings.Join(rows, "\n")))
	return b.String()
}

func (t *Terminal) tokenStyle(s highlight.Style) lipgloss.Style {
	st := t.renderer.NewStyle()
	if s.Color != "" {
		st = st.Foreground(lipgloss.Color(s.Color))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	return st.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
}
