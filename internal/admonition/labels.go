package admonition

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Labels translates admonition headings for one locale.
type Labels struct {
	locale  language.Tag
	printer *message.Printer
}

// DefaultLabels returns the built-in English labels.
func DefaultLabels() *Labels {
	l, _ := NewLabels("", nil)
	return l
}

// NewLabels builds a catalog for locale. English labels are built in; overrides
// (keyed by kind or alias) replace them for locale. An empty locale means English.
func NewLabels(locale string, overrides map[string]string) (*Labels, error) {
	tag := language.English
	if strings.TrimSpace(locale) != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("admonition labels: locale %q: %w", locale, err)
		}
		tag = parsed
	}

	custom := make(map[string]string, len(overrides))
	for name, label := range overrides {
		cfg, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("admonition labels: unknown kind %q", name)
		}
		custom[cfg.LabelID] = label
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for name, cfg := range configs {
		if err := b.SetString(language.English, cfg.LabelID, name); err != nil {
			return nil, err
		}
		label := name
		if override, ok := custom[cfg.LabelID]; ok {
			label = override
		}
		if err := b.SetString(tag, cfg.LabelID, escapeVerbs(label)); err != nil {
			return nil, err
		}
	}
	return &Labels{locale: tag, printer: message.NewPrinter(tag, message.Catalog(b))}, nil
}

// Locale returns the catalog language.
func (l *Labels) Locale() language.Tag { return l.locale }

// Label returns the translated heading for cfg.
func (l *Labels) Label(cfg Config) string {
	return l.printer.Sprintf(cfg.LabelID)
}

func escapeVerbs(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
