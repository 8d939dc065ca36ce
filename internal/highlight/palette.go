package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// Built-in palette names, used when config does not override them.
const (
	DefaultLightStyle = "vs"
	DefaultDarkStyle  = "monokai"
)

// Style is the presentation of a token relative to its palette's base style.
// Zero fields inherit from the enclosing block.
type Style struct {
	Color      string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

// IsZero reports whether s adds nothing to the base style.
func (s Style) IsZero() bool { return s == Style{} }

// CSS renders s as an inline style declaration list with a fixed property order.
func (s Style) CSS() string {
	var parts []string
	if s.Color != "" {
		parts = append(parts, "color:"+s.Color)
	}
	if s.Background != "" {
		parts = append(parts, "background-color:"+s.Background)
	}
	if s.Bold {
		parts = append(parts, "font-weight:bold")
	}
	if s.Italic {
		parts = append(parts, "font-style:italic")
	}
	if s.Underline {
		parts = append(parts, "text-decoration:underline")
	}
	return strings.Join(parts, ";")
}

// Palette is a named chroma style.
type Palette struct {
	Name  string
	style *chroma.Style
}

// NewPalette looks up a registered chroma style by name.
func NewPalette(name string) (Palette, error) {
	s, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown highlight style %q", name)
	}
	return Palette{Name: s.Name, style: s}, nil
}

func mustPalette(name string) Palette {
	p, err := NewPalette(name)
	if err != nil {
		return Palette{Name: styles.Fallback.Name, style: styles.Fallback}
	}
	return p
}

func (p Palette) chromaStyle() *chroma.Style {
	if p.style == nil {
		return styles.Fallback
	}
	return p.style
}

// Base returns the block-level text color and background.
func (p Palette) Base() Style {
	e := p.chromaStyle().Get(chroma.Background)
	var s Style
	if e.Colour.IsSet() {
		s.Color = e.Colour.String()
	}
	if e.Background.IsSet() {
		s.Background = e.Background.String()
	}
	return s
}

// CSSVariables returns the custom properties consumed by the code block stylesheet.
func (p Palette) CSSVariables() string {
	base := p.Base()
	var parts []string
	if base.Color != "" {
		parts = append(parts, "--prism-color:"+base.Color)
	}
	if base.Background != "" {
		parts = append(parts, "--prism-background-color:"+base.Background)
	}
	return strings.Join(parts, ";")
}

// styleFor returns the style of tt with everything equal to the base removed.
func (p Palette) styleFor(tt chroma.TokenType) Style {
	base := p.Base()
	e := p.chromaStyle().Get(tt)
	var s Style
	if e.Colour.IsSet() && e.Colour.String() != base.Color {
		s.Color = e.Colour.String()
	}
	if e.Background.IsSet() && e.Background.String() != base.Background {
		s.Background = e.Background.String()
	}
	s.Bold = e.Bold == chroma.Yes
	s.Italic = e.Italic == chroma.Yes
	s.Underline = e.Underline == chroma.Yes
	return s
}

// Palettes holds the two built-in palettes keyed by mode.
type Palettes struct {
	Light Palette
	Dark  Palette
}

// DefaultPalettes returns the built-in light and dark palettes.
func DefaultPalettes() Palettes {
	return Palettes{
		Light: mustPalette(DefaultLightStyle),
		Dark:  mustPalette(DefaultDarkStyle),
	}
}

// NewPalettes builds palettes from style names. Empty names keep the defaults.
func NewPalettes(light, dark string) (Palettes, error) {
	ps := DefaultPalettes()
	if light != "" {
		p, err := NewPalette(light)
		if err != nil {
			return Palettes{}, err
		}
		ps.Light = p
	}
	if dark != "" {
		p, err := NewPalette(dark)
		if err != nil {
			return Palettes{}, err
		}
		ps.Dark = p
	}
	return ps, nil
}

// For selects the palette for mode.
func (ps Palettes) For(mode theme.Mode) Palette {
	if mode.IsDark() {
		return ps.Dark
	}
	return ps.Light
}
