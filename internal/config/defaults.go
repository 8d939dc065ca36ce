package config

import "git.home.luguber.info/inful/doctheme/internal/theme"

const (
	DefaultLightStyle  = "vs"
	DefaultDarkStyle   = "monokai"
	DefaultOutputDir   = "./site"
	DefaultPreviewHost = "127.0.0.1"
	DefaultPreviewPort = 1316
	DefaultLocale      = "en"
)

// applyDefaults fills zero values and canonicalizes enumerations.
func applyDefaults(cfg *Config) {
	if cfg.Theme.DefaultMode == "" {
		cfg.Theme.DefaultMode = string(theme.Light)
	}
	if cfg.Theme.Locale == "" {
		cfg.Theme.Locale = DefaultLocale
	}
	if cfg.Highlight.LightStyle == "" {
		cfg.Highlight.LightStyle = DefaultLightStyle
	}
	if cfg.Highlight.DarkStyle == "" {
		cfg.Highlight.DarkStyle = DefaultDarkStyle
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
		cfg.Output.Clean = true
	}
	if cfg.Preview.Host == "" {
		cfg.Preview.Host = DefaultPreviewHost
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = DefaultPreviewPort
		cfg.Preview.Metrics = true
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}
