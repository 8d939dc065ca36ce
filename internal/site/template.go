package site

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"strings"

	"git.home.luguber.info/inful/doctheme/internal/theme"
)

const defaultLayout = `<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="{{.Mode}}">
<head>
<meta charset="utf-8">
<meta name="generator" content="doctheme {{.Version}}">
<title>{{.Title}}</title>
</head>
<body>
<main class="markdown">
{{.Content}}
</main>
</body>
</html>
`

// PageData is the value a layout template is executed with.
type PageData struct {
	Title   string
	Lang    string
	Mode    theme.Mode
	Version string
	Content template.HTML
}

// layout is a parsed page template and the document attributes it persists.
type layout struct {
	tmpl       *template.Template
	attributes theme.StaticAttributes
	digest     string
}

// loadLayout parses the layout at path, or the built-in one when path is empty.
// Literal attributes of the layout's <html> element become document attributes;
// templated values are ignored.
func loadLayout(path string) (*layout, error) {
	src := defaultLayout
	attrs := theme.StaticAttributes{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read layout: %w", err)
		}
		src = string(data)
		parsed, err := theme.LoadDocumentAttributes(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse layout attributes: %w", err)
		}
		for k, v := range parsed {
			if !strings.Contains(v, "{{") {
				attrs[k] = v
			}
		}
	}

	tmpl, err := template.New("layout").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}
	sum := sha256.Sum256([]byte(src))
	return &layout{tmpl: tmpl, attributes: attrs, digest: hex.EncodeToString(sum[:8])}, nil
}

func (l *layout) execute(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := l.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
