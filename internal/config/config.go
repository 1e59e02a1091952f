// Package config provides configuration types, defaults and loading for prism.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/theme"
)

// Validation errors, checked with errors.Is.
var (
	ErrUnknownTheme    = theme.ErrUnknownTheme
	ErrUnknownLanguage = errors.New("unknown language")
	ErrInvalidValue    = errors.New("invalid value")
)

// keyDelimiter replaces viper's "." so that dotted map keys such as file
// extensions and "dark.keyword" color overrides survive unmarshalling.
const keyDelimiter = "::"

// Config holds all configuration options for prism.
type Config struct {
	Theme  string            `mapstructure:"theme"`
	Colors map[string]string `mapstructure:"colors"` // "<theme>.<class>" or "<class>" → "#RRGGBB"
	Search SearchConfig      `mapstructure:"search"`
	Limits LimitsConfig      `mapstructure:"limits"`

	// Extensions maps a file extension or base name to a language tag,
	// consulted before the built-in tables.
	Extensions map[string]string `mapstructure:"extensions"`

	Server  ServerConfig  `mapstructure:"server"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// SearchConfig holds search overlay defaults.
type SearchConfig struct {
	CaseSensitive bool `mapstructure:"case_sensitive"`
}

// LimitsConfig bounds a single tokenization. Zero disables a limit.
type LimitsConfig struct {
	MaxInputBytes int           `mapstructure:"max_input_bytes"`
	MatchTimeout  time.Duration `mapstructure:"match_timeout"`
	Budget        time.Duration `mapstructure:"budget"`
}

// ServerConfig holds HTTP API options.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// WatchConfig holds file watcher options.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ViewerConfig holds terminal viewer options.
type ViewerConfig struct {
	TabWidth    int  `mapstructure:"tab_width"`
	LineNumbers bool `mapstructure:"line_numbers"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active (default: false).
	Enabled bool `mapstructure:"enabled"`

	// Exporter specifies the trace export backend.
	// Valid values: "none", "file", "stdout", "otlp" (default: "file")
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the file exporter (JSONL).
	// Default: ~/.config/prism/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the otlp exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces to sample, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme:      string(theme.Default),
		Colors:     map[string]string{},
		Extensions: map[string]string{},
		Limits: LimitsConfig{
			MaxInputBytes: lexer.DefaultMaxInputBytes,
			MatchTimeout:  lexer.DefaultMatchTimeout,
			Budget:        lexer.DefaultBudget,
		},
		Server: ServerConfig{
			Addr:         "localhost:7777",
			CacheTTL:     10 * time.Minute,
			MaxBodyBytes: 4 << 20,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Viewer: ViewerConfig{
			TabWidth:    4,
			LineNumbers: true,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// LexerOptions converts the limits into tokenizer options.
func (c Config) LexerOptions() lexer.Options {
	return lexer.Options{
		MaxInputBytes: c.Limits.MaxInputBytes,
		MatchTimeout:  c.Limits.MatchTimeout,
		Budget:        c.Limits.Budget,
	}
}

// ThemeName returns the configured theme, falling back to the default.
func (c Config) ThemeName() theme.Name {
	name, _ := theme.ParseName(c.Theme)
	return name
}

// LanguageFor picks the language for a file, honoring extension overrides.
func (c Config) LanguageFor(path string) lexer.Language {
	return lexer.LanguageForPathWith(path, c.Extensions)
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	if _, err := theme.ParseStrict(c.Theme); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if err := theme.Validate(c.Colors); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	if err := ValidateExtensions(c.Extensions); err != nil {
		return err
	}
	if err := ValidateLimits(c.Limits); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidValue)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be positive, got %d", ErrInvalidValue, c.Server.MaxBodyBytes)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("%w: server.cache_ttl must not be negative", ErrInvalidValue)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalidValue)
	}
	if c.Viewer.TabWidth < 1 || c.Viewer.TabWidth > 16 {
		return fmt.Errorf("%w: viewer.tab_width must be between 1 and 16, got %d", ErrInvalidValue, c.Viewer.TabWidth)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateExtensions checks that every override names a supported language.
func ValidateExtensions(extensions map[string]string) error {
	for key, tag := range extensions {
		if key == "" {
			return fmt.Errorf("%w: extensions: empty key", ErrInvalidValue)
		}
		if !lexer.ParseLanguage(tag).Known() {
			return fmt.Errorf("extensions.%s: %w %q", key, ErrUnknownLanguage, tag)
		}
	}
	return nil
}

// ValidateLimits rejects negative limits.
func ValidateLimits(limits LimitsConfig) error {
	if limits.MaxInputBytes < 0 {
		return fmt.Errorf("%w: limits.max_input_bytes must not be negative", ErrInvalidValue)
	}
	if limits.MatchTimeout < 0 {
		return fmt.Errorf("%w: limits.match_timeout must not be negative", ErrInvalidValue)
	}
	if limits.Budget < 0 {
		return fmt.Errorf("%w: limits.budget must not be negative", ErrInvalidValue)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("%w: tracing.sample_rate must be between 0.0 and 1.0, got %v", ErrInvalidValue, tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("%w: tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", ErrInvalidValue, tracing.Exporter)
		}
	}

	// Only validate endpoint requirements when tracing is enabled
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("%w: tracing.otlp_endpoint is required when exporter is \"otlp\"", ErrInvalidValue)
	}

	return nil
}

// DefaultConfigPath is the project-local config location.
const DefaultConfigPath = ".prism/config.yaml"

// UserConfigPath returns ~/.config/prism/config.yaml, or "" without a home dir.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "prism", "config.yaml")
}

// DefaultTraceFilePath returns the default file exporter destination.
func DefaultTraceFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".prism", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "prism", "traces", "traces.jsonl")
}

// Resolve picks the config file to read: the explicit path if given, then
// the project-local file, then the user file. It returns "" when none exists.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, candidate := range []string{DefaultConfigPath, UserConfigPath()} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load reads configuration from path layered over Defaults and validates
// it. An empty path yields the defaults. PRISM_THEME overrides the theme.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", path)
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "Loaded config", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTraceFilePath()
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	d := Defaults()

	set := func(key string, value any) {
		v.SetDefault(key, value)
	}
	set("theme", d.Theme)
	set("colors", d.Colors)
	set("extensions", d.Extensions)
	set("search::case_sensitive", d.Search.CaseSensitive)
	set("limits::max_input_bytes", d.Limits.MaxInputBytes)
	set("limits::match_timeout", d.Limits.MatchTimeout)
	set("limits::budget", d.Limits.Budget)
	set("server::addr", d.Server.Addr)
	set("server::cache_ttl", d.Server.CacheTTL)
	set("server::max_body_bytes", d.Server.MaxBodyBytes)
	set("watch::debounce", d.Watch.Debounce)
	set("viewer::tab_width", d.Viewer.TabWidth)
	set("viewer::line_numbers", d.Viewer.LineNumbers)
	set("tracing::enabled", d.Tracing.Enabled)
	set("tracing::exporter", d.Tracing.Exporter)
	set("tracing::file_path", d.Tracing.FilePath)
	set("tracing::otlp_endpoint", d.Tracing.OTLPEndpoint)
	set("tracing::sample_rate", d.Tracing.SampleRate)

	v.SetEnvPrefix("PRISM")
	_ = v.BindEnv("theme")
	return v
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Prism Configuration

# Color theme for HTML classes and terminal output: default, dark or light
theme: default

# Override individual colors (hex). Keys are "<theme>.<class>", or a bare
# "<class>" to change every theme. Classes are token types (keyword, string,
# comment, ...) plus foreground, background, search and fallback.
colors: {}
#   dark.keyword: "#FF79C6"
#   comment: "#888888"

# Search overlay defaults
search:
  case_sensitive: false

# Work limits for a single tokenization (0 disables a limit).
# Exceeding any of them falls back to plain, unhighlighted lines.
limits:
  max_input_bytes: 1048576
  match_timeout: 2s
  budget: 5s

# Map file extensions or names to language tags ('prism languages' lists tags)
extensions: {}
#   ".mc": monkey c
#   Jenkinsfile: bash

# HTTP API ('prism serve')
server:
  addr: localhost:7777
  cache_ttl: 10m          # How long rendered responses are cached
  max_body_bytes: 4194304

# File watcher ('prism watch')
watch:
  debounce: 300ms

# Terminal viewer ('prism view')
viewer:
  tab_width: 4
  line_numbers: true

# Distributed tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/prism/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
