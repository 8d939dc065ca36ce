package theme

// DataThemeAttribute is the document-level marker persisted by the site layout.
const DataThemeAttribute = "data-theme"

// Source records where a resolved mode came from.
type Source string

const (
	SourceProvider  Source = "provider"
	SourceAttribute Source = "attribute"
	SourceDefault   Source = "default"
)

// AttributeSource exposes persisted document attributes.
type AttributeSource interface {
	Attribute(name string) (string, bool)
}

// StaticAttributes is an AttributeSource backed by a map.
type StaticAttributes map[string]string

func (a StaticAttributes) Attribute(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Resolver determines the mode for one render pass. Both fields are optional:
// a nil Provider is treated as unmounted and a nil Attributes as empty.
type Resolver struct {
	Provider   Provider
	Attributes AttributeSource
}

// Resolve returns the mode for the current render pass.
func (r Resolver) Resolve() (Mode, error) {
	m, _, err := r.ResolveWithSource()
	return m, err
}

// ResolveWithSource is Resolve that also reports which input decided the mode.
// Errors other than an unavailable context are returned unchanged.
func (r Resolver) ResolveWithSource() (Mode, Source, error) {
	if r.Provider != nil {
		m, err := r.Provider.ColorMode()
		if err == nil {
			return ParseMode(string(m)), SourceProvider, nil
		}
		if !IsContextUnavailable(err) {
			return "", "", err
		}
	}
	if r.Attributes != nil {
		if v, ok := r.Attributes.Attribute(DataThemeAttribute); ok {
			return ParseMode(v), SourceAttribute, nil
		}
	}
	return Light, SourceDefault, nil
}
