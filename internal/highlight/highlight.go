// Package highlight turns source text into per-line styled tokens.
//
// Tokenize is a pure function of (code, language, mode): identical input always
// yields identical output, so a page rendered twice (static pass and a later
// re-render) produces byte-identical markup.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"git.home.luguber.info/inful/doctheme/internal/foundation/normalization"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// Token is one styled segment of a line.
type Token struct {
	Text  string
	Class string // short chroma class, e.g. "k" for keywords; empty for plain text
	Style Style
}

// TokenLine is one source line decomposed into tokens. An empty line has no tokens.
type TokenLine []Token

// Text returns the line's text without styling.
func (l TokenLine) Text() string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}

// plainLanguages are tags that explicitly ask for no highlighting.
var plainLanguages = map[string]bool{"": true, "text": true, "txt": true, "plain": true, "plaintext": true}

// lexerAliases maps fence tags chroma does not know onto the closest lexer.
var lexerAliases = map[string]string{
	"mdx":     "markdown",
	"console": "shell-session",
}

// Highlighter is the syntax highlighting adapter. It is safe for concurrent use.
type Highlighter struct {
	palettes Palettes
}

// New returns a highlighter using the given palettes.
func New(palettes Palettes) *Highlighter {
	return &Highlighter{palettes: palettes}
}

// Palettes returns the configured palettes.
func (h *Highlighter) Palettes() Palettes { return h.palettes }

// Palette returns the palette selected for mode.
func (h *Highlighter) Palette(mode theme.Mode) Palette { return h.palettes.For(mode) }

// Supports reports whether language resolves to a lexer.
func (h *Highlighter) Supports(language string) bool {
	return lexerFor(language) != nil
}

// LineCount is the number of lines Tokenize returns for code.
func LineCount(code string) int {
	return strings.Count(code, "\n") + 1
}

// Tokenize splits code into exactly LineCount(code) token lines. Unknown or absent
// languages, and lexer failures, degrade to one unstyled token per line.
func (h *Highlighter) Tokenize(code, language string, mode theme.Mode) []TokenLine {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	want := LineCount(code)

	lexer := lexerFor(language)
	if lexer == nil {
		return passThrough(code)
	}
	// EnsureLF stays off: a lone carriage return is text, not a line break.
	iterator, err := chroma.Coalesce(lexer).Tokenise(&chroma.TokeniseOptions{State: "root"}, code)
	if err != nil {
		return passThrough(code)
	}

	palette := h.palettes.For(mode)
	styleCache := map[chroma.TokenType]Style{}
	lines := make([]TokenLine, 1, want)
	for _, tok := range iterator.Tokens() {
		st, ok := styleCache[tok.Type]
		if !ok {
			st = palette.styleFor(tok.Type)
			styleCache[tok.Type] = st
		}
		class := tokenClass(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, TokenLine{})
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Token{Text: part, Class: class, Style: st})
		}
	}
	return fitLines(lines, want)
}

// fitLines trims the empty lines lexers append after a final newline and pads
// short results so the line count always matches the source.
func fitLines(lines []TokenLine, want int) []TokenLine {
	if len(lines) > want {
		lines = lines[:want]
	}
	for len(lines) < want {
		lines = append(lines, TokenLine{})
	}
	return lines
}

func passThrough(code string) []TokenLine {
	raw := strings.Split(code, "\n")
	lines := make([]TokenLine, len(raw))
	for i, text := range raw {
		if text != "" {
			lines[i] = TokenLine{{Text: text}}
		}
	}
	return lines
}

func lexerFor(language string) chroma.Lexer {
	tag := normalization.Clean(language)
	if plainLanguages[tag] {
		return nil
	}
	if alias, ok := lexerAliases[tag]; ok {
		tag = alias
	}
	return lexers.Get(tag)
}

func tokenClass(tt chroma.TokenType) string {
	for _, t := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if cls, ok := chroma.StandardTypes[t]; ok {
			return cls
		}
	}
	return ""
}
