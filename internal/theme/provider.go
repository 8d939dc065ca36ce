package theme

import (
	"errors"
	"regexp"
)

// ErrContextUnavailable is returned by providers that are not mounted.
var ErrContextUnavailable = errors.New("theme: hook is called outside the <ColorModeProvider>")

// providerAbsence matches the messages of context accessors that report a
// missing provider without wrapping ErrContextUnavailable.
var providerAbsence = regexp.MustCompile(`ColorModeProvider|CodeBlockContextProvider`)

// IsContextUnavailable reports whether err signals a missing ambient provider.
// It is the only error condition the rendering core recovers from.
func IsContextUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrContextUnavailable) {
		return true
	}
	return providerAbsence.MatchString(err.Error())
}

// Provider supplies the ambient color mode.
type Provider interface {
	ColorMode() (Mode, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (Mode, error)

func (f ProviderFunc) ColorMode() (Mode, error) { return f() }

// Fixed returns a provider that always reports m.
func Fixed(m Mode) Provider {
	return ProviderFunc(func() (Mode, error) { return m, nil })
}

// Unmounted is a provider that always reports ErrContextUnavailable.
var Unmounted Provider = ProviderFunc(func() (Mode, error) { return "", ErrContextUnavailable })
