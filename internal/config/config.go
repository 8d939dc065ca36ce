// Package config loads and validates the doctheme YAML configuration.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
)

// Config is the root configuration document.
type Config struct {
	Theme     ThemeConfig       `yaml:"theme"`
	Highlight HighlightConfig   `yaml:"highlight"`
	Languages map[string]string `yaml:"languages,omitempty" validate:"dive,keys,required,endkeys,required"`
	Output    OutputConfig      `yaml:"output"`
	Cache     CacheConfig       `yaml:"cache"`
	Preview   PreviewConfig     `yaml:"preview"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// ThemeConfig controls mode resolution and labels.
type ThemeConfig struct {
	DefaultMode      string            `yaml:"default_mode" validate:"omitempty,mode"`               // mode for terminal output when none is requested
	DataTheme        string            `yaml:"data_theme" validate:"omitempty,mode"`                 // persisted document attribute; overrides the layout's
	Layout           string            `yaml:"layout" validate:"omitempty,file"`                     // HTML page template
	Locale           string            `yaml:"locale" validate:"omitempty,bcp47_language_tag"`       // admonition label language
	AdmonitionLabels map[string]string `yaml:"admonition_labels,omitempty" validate:"dive,required"` // kind -> label for Locale
}

// HighlightConfig names the chroma styles used for each mode.
type HighlightConfig struct {
	LightStyle string `yaml:"light_style" validate:"required"`
	DarkStyle  string `yaml:"dark_style" validate:"required"`
}

// OutputConfig controls where rendered pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory" validate:"required"`
	Clean     bool   `yaml:"clean"`
}

// CacheConfig locates the render cache. An empty path disables caching.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Host    string `yaml:"host" validate:"required"`
	Port    int    `yaml:"port" validate:"min=1,max=65535"`
	Metrics bool   `yaml:"metrics"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, defaults and validates the configuration at configPath.
// .env and .env.local in the working directory are loaded first so ${VAR}
// references can use them.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).Build()
	}
	return Parse(data)
}

// Parse is Load for in-memory YAML.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RenderKey identifies every setting that changes rendered output. Cached pages
// rendered under a different key are never reused.
func (c *Config) RenderKey() string {
	// yaml.v3 sorts map keys, so the encoding is stable.
	data, err := yaml.Marshal(struct {
		Theme     ThemeConfig       `yaml:"theme"`
		Highlight HighlightConfig   `yaml:"highlight"`
		Languages map[string]string `yaml:"languages"`
	}{c.Theme, c.Highlight, c.Languages})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Default()
	example.Languages = map[string]string{"hcl": "HCL"}
	example.Theme.AdmonitionLabels = map[string]string{}

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}
	header := "# doctheme configuration\n# Values may reference environment variables as ${VAR}.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
