// Package theme resolves the color mode a page is rendered in.
//
// The mode normally comes from an ambient Provider (page frontmatter, a preview
// toggle). When no provider is mounted, as happens for pages rendered before any
// provider exists, the resolver falls back to the persisted data-theme marker of
// the site layout and finally to light. The fallback is deterministic so that
// repeated renders of the same input produce identical output.
package theme

import "git.home.luguber.info/inful/doctheme/internal/foundation/normalization"

// Mode is the active color mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

var modeNormalizer = normalization.NewNormalizer(map[string]Mode{
	"light": Light,
	"dark":  Dark,
}, Light)

// ParseMode normalizes raw into a Mode. Anything other than dark is light.
func ParseMode(raw string) Mode {
	return modeNormalizer.Normalize(raw)
}

// ParseModeStrict is ParseMode for config validation.
func ParseModeStrict(raw string) (Mode, error) {
	return modeNormalizer.NormalizeWithError(raw)
}

func (m Mode) String() string { return string(m) }

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool { return m == Dark }
