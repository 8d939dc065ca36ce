package codeblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFence(t *testing.T) {
	t.Run("full metastring", func(t *testing.T) {
		m := ParseFence(`js title="app.js" {1,3-4} showLineNumbers=5`, "a\nb\nc\nd\n")

		assert.Equal(t, "js", m.Language)
		assert.Equal(t, "app.js", m.Title)
		assert.Equal(t, "a\nb\nc\nd", m.Code)
		require.NotNil(t, m.LineNumbersStart)
		assert.Equal(t, 5, *m.LineNumbersStart)
		assert.Equal(t, map[int][]string{
			0: {HighlightedLineClass},
			2: {HighlightedLineClass},
			3: {HighlightedLineClass},
		}, m.LineClassNames)
	})

	t.Run("bare fence", func(t *testing.T) {
		m := ParseFence("", "x\n")
		assert.Equal(t, Metadata{Code: "x"}, m)
		assert.False(t, m.ShowLineNumbers())
	})

	t.Run("range without language", func(t *testing.T) {
		m := ParseFence("{2}", "a\nb\n")
		assert.Empty(t, m.Language)
		assert.Equal(t, map[int][]string{1: {HighlightedLineClass}}, m.LineClassNames)
	})

	t.Run("showLineNumbers without value starts at one", func(t *testing.T) {
		m := ParseFence("go showLineNumbers", "x")
		require.NotNil(t, m.LineNumbersStart)
		assert.Equal(t, 1, *m.LineNumbersStart)
	})

	t.Run("single quoted title and class name", func(t *testing.T) {
		m := ParseFence(`py title='main.py' className="wide"`, "pass")
		assert.Equal(t, "main.py", m.Title)
		assert.Equal(t, "wide", m.ClassName)
	})

	t.Run("braces inside the title are not ranges", func(t *testing.T) {
		m := ParseFence(`yaml title="{config}.yaml"`, "a: 1\n")
		assert.Equal(t, "{config}.yaml", m.Title)
		assert.Nil(t, m.LineClassNames)
	})

	t.Run("ranges past the end are ignored", func(t *testing.T) {
		m := ParseFence("go {5}", "a\nb")
		assert.Nil(t, m.LineClassNames)
	})

	t.Run("crlf body", func(t *testing.T) {
		m := ParseFence("sh", "a\r\nb\r\n")
		assert.Equal(t, "a\nb", m.Code)
	})
}

func TestParseFenceMagicComments(t *testing.T) {
	t.Run("next line", func(t *testing.T) {
		m := ParseFence("js", "a\n// highlight-next-line\nb\nc\n")
		assert.Equal(t, "a\nb\nc", m.Code)
		assert.Equal(t, map[int][]string{1: {HighlightedLineClass}}, m.LineClassNames)
	})

	t.Run("start and end", func(t *testing.T) {
		m := ParseFence("python", "# highlight-start\nx\ny\n# highlight-end\nz")
		assert.Equal(t, "x\ny\nz", m.Code)
		assert.Equal(t, map[int][]string{
			0: {HighlightedLineClass},
			1: {HighlightedLineClass},
		}, m.LineClassNames)
	})

	t.Run("html comment", func(t *testing.T) {
		m := ParseFence("html", "<!-- highlight-next-line -->\n<p>hi</p>")
		assert.Equal(t, "<p>hi</p>", m.Code)
		assert.Equal(t, map[int][]string{0: {HighlightedLineClass}}, m.LineClassNames)
	})

	t.Run("dangling directive is still removed", func(t *testing.T) {
		m := ParseFence("js", "a\n// highlight-next-line")
		assert.Equal(t, "a", m.Code)
		assert.Nil(t, m.LineClassNames)
	})

	t.Run("ranges disable magic comments", func(t *testing.T) {
		body := "// highlight-next-line\nb"
		m := ParseFence("js {1}", body)
		assert.Equal(t, body, m.Code)
		assert.Equal(t, map[int][]string{0: {HighlightedLineClass}}, m.LineClassNames)
	})
}
