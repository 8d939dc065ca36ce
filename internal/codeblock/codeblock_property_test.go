//go:build property
// +build property

package codeblock

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"git.home.luguber.info/inful/doctheme/internal/highlight"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// TestComposeProperties checks that composed blocks keep one row per source
// line and depend only on their inputs.
func TestComposeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	c := NewComposer(highlight.New(highlight.DefaultPalettes()), DefaultLabels())

	languages := gen.OneConstOf("go", "js", "python", "yaml", "", "frobnicate")
	modes := gen.OneConstOf(theme.Light, theme.Dark)
	lines := gen.SliceOfN(8, gen.RegexMatch(`^[a-z0-9 (){}=+;."]*$`))

	// Property: one token-line row per source line, with or without numbering.
	properties.Property("compose row count", prop.ForAll(
		func(src []string, language string, mode theme.Mode, numbered bool) bool {
			meta := Metadata{Code: strings.Join(src, "\n"), Language: language}
			if numbered {
				meta.LineNumbersStart = StartAt(1)
			}
			out, err := RenderHTML(c.Compose(NewRenderContext(meta, mode), meta.Code))
			if err != nil {
				return false
			}
			return strings.Count(out, `class="token-line`) == highlight.LineCount(meta.Code)
		},
		lines, languages, modes, gen.Bool(),
	))

	// Property: identical inputs give byte-identical output.
	properties.Property("compose is deterministic", prop.ForAll(
		func(src []string, language string, mode theme.Mode) bool {
			meta := ParseFence(language+` title="t" {1}`, strings.Join(src, "\n"))
			first, err1 := RenderHTML(c.Compose(NewRenderContext(meta, mode), meta.Code))
			second, err2 := RenderHTML(c.Compose(NewRenderContext(meta, mode), meta.Code))
			return err1 == nil && err2 == nil && first == second
		},
		lines, languages, modes,
	))

	properties.TestingRun(t)
}
