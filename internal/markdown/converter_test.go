package markdown

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doctheme/internal/admonition"
	"git.home.luguber.info/inful/doctheme/internal/codeblock"
	"git.home.luguber.info/inful/doctheme/internal/highlight"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

func newTestConverter(opts ...ConverterOption) *Converter {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	composer := codeblock.NewComposer(highlight.New(highlight.DefaultPalettes()), codeblock.DefaultLabels())
	admonitions := admonition.NewRenderer(nil, admonition.WithLogger(quiet))
	return NewConverter(composer, admonitions, append([]ConverterOption{WithConverterLogger(quiet)}, opts...)...)
}

func convert(t *testing.T, c *Converter, src string, opts ...Option) (string, *Result) {
	t.Helper()
	var buf bytes.Buffer
	res, err := c.Convert([]byte(src), &buf, opts...)
	require.NoError(t, err)
	return buf.String(), res
}

func TestConvertFencedCodeBlock(t *testing.T) {
	out, res := convert(t, newTestConverter(), "# Title\n\n```js\na\nb\n```\n", WithModeProvider(theme.Fixed(theme.Dark)))

	assert.Equal(t, theme.Dark, res.Mode)
	assert.Equal(t, theme.SourceProvider, res.ModeSource)
	assert.Equal(t, 1, res.Layouts[codeblock.LayoutComposed])

	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, `data-color-mode="dark"`)
	assert.Equal(t, 2, strings.Count(out, `class="token-line`))
	assert.Contains(t, out, `<span class="codeBlockLanguage">JavaScript</span>`)
	assert.NotContains(t, out, "codeLineNumber")
}

func TestConvertFenceMetadata(t *testing.T) {
	src := "```go title=\"main.go\" {2} showLineNumbers\npackage main\nfunc main() {}\n```\n"
	out, _ := convert(t, newTestConverter(), src)

	assert.Contains(t, out, `<div class="codeBlockTitle">main.go</div>`)
	assert.Contains(t, out, `<span class="codeLineNumber">2</span>`)
	assert.Equal(t, 1, strings.Count(out, codeblock.HighlightedLineClass))
}

func TestConvertModeResolution(t *testing.T) {
	src := "```sh\nls\n```\n"

	t.Run("unmounted provider uses document attribute", func(t *testing.T) {
		c := newTestConverter(WithDocumentAttributes(theme.StaticAttributes{theme.DataThemeAttribute: "dark"}))
		out, res := convert(t, c, src, WithModeProvider(theme.Unmounted))
		assert.Equal(t, theme.SourceAttribute, res.ModeSource)
		assert.Contains(t, out, `data-color-mode="dark"`)
	})

	t.Run("nothing available defaults to light", func(t *testing.T) {
		out, res := convert(t, newTestConverter(), src)
		assert.Equal(t, theme.SourceDefault, res.ModeSource)
		assert.Contains(t, out, `data-color-mode="light"`)
	})

	t.Run("provider failure stops the conversion", func(t *testing.T) {
		boom := errors.New("storage offline")
		var buf bytes.Buffer
		_, err := newTestConverter().Convert([]byte(src), &buf, WithModeProvider(theme.ProviderFunc(func() (theme.Mode, error) {
			return "", boom
		})))
		require.ErrorIs(t, err, boom)
		assert.Empty(t, buf.String())
	})
}

func TestConvertIndentedCodeFallsBack(t *testing.T) {
	out, res := convert(t, newTestConverter(), "Text\n\n    x < y\n", WithModeProvider(theme.Fixed(theme.Dark)))

	assert.Equal(t, 1, res.Layouts[codeblock.LayoutFallback])
	assert.Contains(t, out, "<pre><code>x &lt; y\n</code></pre>")
	assert.NotContains(t, out, "codeBlockContainer")
}

func TestConvertAdmonitions(t *testing.T) {
	src := ":::caution Watch out\nBe **careful**.\n:::\n\n:::foobar\nhello\n:::\n"
	out, res := convert(t, newTestConverter(), src)

	assert.Contains(t, out, "theme-admonition-warning alert alert--warning")
	assert.Contains(t, out, "</svg></span>Watch out</div>")
	assert.Contains(t, out, "<p>Be <strong>careful</strong>.</p>")
	assert.Contains(t, out, "theme-admonition-info alert alert--info")
	assert.Contains(t, out, "</svg></span>info</div>")
	assert.Equal(t, []string{"foobar"}, res.UnknownAdmonitions)
	assert.Equal(t, 2, strings.Count(out, `<div class="admonitionContent">`))
}

func TestConvertNestedAdmonitionWithCode(t *testing.T) {
	src := "::::note[Outer]\n:::tip\n```py\nprint(1)\n```\n:::\n::::\n"
	out, _ := convert(t, newTestConverter(), src)

	assert.Contains(t, out, "theme-admonition-note")
	assert.Contains(t, out, "theme-admonition-tip")
	assert.Contains(t, out, "</svg></span>Outer</div>")
	assert.Contains(t, out, "language-py")
	assert.True(t, strings.Index(out, "theme-admonition-tip") < strings.Index(out, "language-py"))
}

func TestConvertGFM(t *testing.T) {
	out, _ := convert(t, newTestConverter(), "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~\n")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>old</del>")
}

func TestConvertIsDeterministic(t *testing.T) {
	src := "```go {1}\nfunc f() {}\n```\n\n:::note\nx\n:::\n"
	c := newTestConverter()
	first, _ := convert(t, c, src, WithModeProvider(theme.Fixed(theme.Dark)))
	second, _ := convert(t, c, src, WithModeProvider(theme.Fixed(theme.Dark)))
	assert.Equal(t, first, second)
}
