package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doctheme/internal/theme"
)

func findToken(lines []TokenLine, text string) (Token, bool) {
	for _, line := range lines {
		for _, tok := range line {
			if tok.Text == text {
				return tok, true
			}
		}
	}
	return Token{}, false
}

func TestTokenizePreservesLineCount(t *testing.T) {
	h := New(DefaultPalettes())

	tests := []struct {
		name     string
		code     string
		language string
		want     int
	}{
		{"empty input", "", "go", 1},
		{"empty input without language", "", "", 1},
		{"single line", "x := 1", "go", 1},
		{"two lines", "a\nb", "js", 2},
		{"trailing newline counts", "a\n", "python", 2},
		{"blank lines kept", "\n\n\n", "go", 4},
		{"unknown language", "one\ntwo\nthree", "frobnicate", 3},
		{"crlf input", "a\r\nb", "js", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []theme.Mode{theme.Light, theme.Dark} {
				lines := h.Tokenize(tt.code, tt.language, mode)
				assert.Len(t, lines, tt.want)
				assert.Equal(t, tt.want, LineCount(strings.ReplaceAll(tt.code, "\r\n", "\n")))
			}
		})
	}
}

func TestTokenizeKeepsText(t *testing.T) {
	h := New(DefaultPalettes())
	code := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"

	lines := h.Tokenize(code, "go", theme.Light)
	got := make([]string, len(lines))
	for i, l := range lines {
		got[i] = l.Text()
	}
	assert.Equal(t, strings.Split(code, "\n"), got)
}

func TestTokenizeHighlightsKnownLanguage(t *testing.T) {
	h := New(DefaultPalettes())
	code := "func main() {}"

	light := h.Tokenize(code, "go", theme.Light)
	dark := h.Tokenize(code, "Go", theme.Dark)

	lightTok, ok := findToken(light, "func")
	require.True(t, ok)
	darkTok, ok := findToken(dark, "func")
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(lightTok.Class, "k"), "class %q", lightTok.Class)
	assert.False(t, lightTok.Style.IsZero())
	assert.NotEqual(t, lightTok.Style.Color, darkTok.Style.Color)
}

func TestTokenizeUnknownLanguagePassesThrough(t *testing.T) {
	h := New(DefaultPalettes())
	lines := h.Tokenize("let x = 1\n\nlet y = 2", "frobnicate", theme.Dark)

	require.Len(t, lines, 3)
	assert.Equal(t, TokenLine{{Text: "let x = 1"}}, lines[0])
	assert.Empty(t, lines[1])
	assert.Equal(t, TokenLine{{Text: "let y = 2"}}, lines[2])
	assert.False(t, h.Supports("frobnicate"))
	assert.False(t, h.Supports("text"))
	assert.True(t, h.Supports("js"))
	assert.True(t, h.Supports("mdx"))
}

func TestTokenizeIsDeterministic(t *testing.T) {
	h := New(DefaultPalettes())
	code := "const a = {b: [1, 2, 3]};\n// comment\nconsole.log(a);"
	for _, mode := range []theme.Mode{theme.Light, theme.Dark} {
		first := h.Tokenize(code, "js", mode)
		for range 3 {
			assert.Equal(t, first, h.Tokenize(code, "js", mode))
		}
	}
}

func TestPalettes(t *testing.T) {
	ps := DefaultPalettes()
	assert.Equal(t, DefaultLightStyle, ps.For(theme.Light).Name)
	assert.Equal(t, DefaultDarkStyle, ps.For(theme.Dark).Name)

	assert.Contains(t, ps.Light.CSSVariables(), "--prism-background-color:#")
	assert.NotEqual(t, ps.Light.Base(), ps.Dark.Base())

	custom, err := NewPalettes("", "dracula")
	require.NoError(t, err)
	assert.Equal(t, DefaultLightStyle, custom.Light.Name)
	assert.Equal(t, "dracula", custom.Dark.Name)

	_, err = NewPalettes("no-such-style", "")
	require.Error(t, err)
}

func TestStyleCSS(t *testing.T) {
	assert.Equal(t, "", Style{}.CSS())
	assert.Equal(t,
		"color:#0000ff;background-color:#ffffff;font-weight:bold;font-style:italic;text-decoration:underline",
		Style{Color: "#0000ff", Background: "#ffffff", Bold: true, Italic: true, Underline: true}.CSS())
}
