package admonition

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/doctheme/internal/markup"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in        string
		kind      string
		className string
		known     bool
	}{
		{"note", "note", "secondary", true},
		{"tip", "tip", "success", true},
		{"danger", "danger", "danger", true},
		{"differentiator", "differentiator", "differentiator", true},
		{"secondary", "note", "secondary", true},
		{"important", "info", "info", true},
		{"success", "tip", "success", true},
		{"caution", "warning", "warning", true},
		{"Warning", "warning", "warning", true},
		{"foobar", "info", "info", false},
		{"", "info", "info", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg, ok := Lookup(tt.in)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.kind, cfg.Kind)
			assert.Equal(t, tt.className, cfg.ClassName)
			assert.Equal(t, "theme.admonition."+tt.kind, cfg.LabelID)
		})
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"danger", "differentiator", "info", "note", "tip", "warning"}, Kinds())
}

func TestResolveUnknownWarns(t *testing.T) {
	var logs bytes.Buffer
	r := NewRenderer(nil, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	cfg := r.Resolve("foobar")
	assert.Equal(t, "info", cfg.Kind)
	assert.Contains(t, logs.String(), "Unknown admonition type")
	assert.Contains(t, logs.String(), "admonition_kind=foobar")

	logs.Reset()
	r.Resolve("caution")
	assert.Empty(t, logs.String())
}

func TestRender(t *testing.T) {
	r := NewRenderer(nil, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	out, err := markup.Render(r.Render(Props{Kind: "caution"}, markup.Element(atom.P, nil, markup.Text("careful"))))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out,
		`<div class="theme-admonition theme-admonition-warning alert alert--warning admonition">`))
	assert.Contains(t, out, `<div class="admonitionHeading"><span class="admonitionIcon"><svg viewBox="0 0 16 16"><path fill-rule="evenodd" d="M8.893`)
	assert.Contains(t, out, `</svg></span>warning</div>`)
	assert.Contains(t, out, `<div class="admonitionContent"><p>careful</p></div>`)
}

func TestRenderUnknownKindFallsBackToInfo(t *testing.T) {
	r := NewRenderer(nil, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	out, err := markup.Render(r.Render(Props{Kind: "foobar", Title: "Heads up"}))
	require.NoError(t, err)
	assert.Contains(t, out, "theme-admonition-info alert alert--info")
	assert.Contains(t, out, "</svg></span>Heads up</div>")
}

func TestFrame(t *testing.T) {
	r := NewRenderer(nil)

	open, closing, err := r.Frame(Props{Kind: "tip", Title: "A & B"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(open, `<div class="admonitionContent">`))
	assert.Contains(t, open, "A &amp; B")
	assert.Equal(t, "</div></div>", closing)

	full, err := markup.Render(r.Render(Props{Kind: "tip", Title: "A & B"}, markup.Text("body")))
	require.NoError(t, err)
	assert.Equal(t, full, open+"body"+closing)
}

func TestLabels(t *testing.T) {
	t.Run("english defaults", func(t *testing.T) {
		l := DefaultLabels()
		cfg, _ := Lookup("danger")
		assert.Equal(t, "danger", l.Label(cfg))
	})

	t.Run("locale overrides", func(t *testing.T) {
		l, err := NewLabels("de", map[string]string{"note": "Hinweis", "caution": "Achtung"})
		require.NoError(t, err)
		assert.Equal(t, "de", l.Locale().String())

		note, _ := Lookup("note")
		warning, _ := Lookup("warning")
		tip, _ := Lookup("tip")
		assert.Equal(t, "Hinweis", l.Label(note))
		assert.Equal(t, "Achtung", l.Label(warning))
		assert.Equal(t, "tip", l.Label(tip))
	})

	t.Run("percent is literal", func(t *testing.T) {
		l, err := NewLabels("en", map[string]string{"info": "100% info"})
		require.NoError(t, err)
		info, _ := Lookup("info")
		assert.Equal(t, "100% info", l.Label(info))
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewLabels("en", map[string]string{"foobar": "x"})
		require.Error(t, err)
	})

	t.Run("bad locale", func(t *testing.T) {
		_, err := NewLabels("not a locale!", nil)
		require.Error(t, err)
	})
}
