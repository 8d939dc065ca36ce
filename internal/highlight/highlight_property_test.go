//go:build property

package highlight

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"git.home.luguber.info/inful/doctheme/internal/theme"
)

func TestTokenizeProperties(t *testing.T) {
	h := New(DefaultPalettes())
	properties := gopter.NewProperties(nil)

	languages := gen.OneConstOf("go", "js", "python", "yaml", "bash", "frobnicate", "")
	modes := gen.OneConstOf(theme.Light, theme.Dark)
	lines := gen.SliceOf(gen.AlphaString()).Map(func(parts []string) string {
		return strings.Join(parts, "\n")
	})

	// Property: one token line per source line, including the empty input.
	properties.Property("line count preservation", prop.ForAll(
		func(code, language string, mode theme.Mode) bool {
			return len(h.Tokenize(code, language, mode)) == strings.Count(code, "\n")+1
		},
		lines, languages, modes,
	))

	// Property: identical arguments yield identical output.
	properties.Property("determinism", prop.ForAll(
		func(code, language string, mode theme.Mode) bool {
			return reflect.DeepEqual(h.Tokenize(code, language, mode), h.Tokenize(code, language, mode))
		},
		lines, languages, modes,
	))

	// Property: tokenization never loses or invents text.
	properties.Property("text preservation", prop.ForAll(
		func(code, language string, mode theme.Mode) bool {
			got := h.Tokenize(code, language, mode)
			texts := make([]string, len(got))
			for i, l := range got {
				texts[i] = l.Text()
			}
			return strings.Join(texts, "\n") == code
		},
		lines, languages, modes,
	))

	properties.TestingRun(t)
}
