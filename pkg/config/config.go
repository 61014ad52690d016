package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
)

// Config captures module-level configuration knobs. Feature packages (nonce,
// storage, transport) pull from these nested structs.
type Config struct {
	Plugin       PluginConfig       `mapstructure:"plugin" json:"plugin"`
	Settings     SettingsConfig     `mapstructure:"settings" json:"settings"`
	Site         SiteConfig         `mapstructure:"site" json:"site"`
	Nonce        NonceConfig        `mapstructure:"nonce" json:"nonce"`
	Localization LocalizationConfig `mapstructure:"localization" json:"localization"`
	Server       ServerConfig       `mapstructure:"server" json:"server"`
	Persistence  PersistenceConfig  `mapstructure:"persistence" json:"persistence"`
	Logging      LoggingConfig      `mapstructure:"logging" json:"logging"`
}

// PluginConfig names the extension. Prefix namespaces hook names and the
// shortcode tag; Name is the lowercase system name used for the token
// namespace, the policy hook and the script handle.
type PluginConfig struct {
	Prefix  string `mapstructure:"prefix" json:"prefix"`
	Name    string `mapstructure:"name" json:"name"`
	Version string `mapstructure:"version" json:"version"`
}

// SettingsConfig overrides individual settings. Empty values keep the
// defaults derived from the plugin name.
type SettingsConfig struct {
	RequestID   string `mapstructure:"request_id" json:"request_id"`
	NonceAction string `mapstructure:"nonce_delete" json:"nonce_delete"`
	LinkClass   string `mapstructure:"link_class" json:"link_class"`
}

// SiteConfig describes public URLs.
type SiteConfig struct {
	HomeURL string `mapstructure:"home_url" json:"home_url"`
}

// NonceConfig controls token signing.
type NonceConfig struct {
	Secret    string        `mapstructure:"secret" json:"secret"`
	Lifetime  time.Duration `mapstructure:"lifetime" json:"lifetime"`
	SingleUse bool          `mapstructure:"single_use" json:"single_use"`
}

// LocalizationConfig controls the default locale for link text and prompts.
type LocalizationConfig struct {
	DefaultLocale string `mapstructure:"default_locale" json:"default_locale"`
}

// ServerConfig configures the demo HTTP server.
type ServerConfig struct {
	Addr string `mapstructure:"addr" json:"addr"`
}

// PersistenceConfig configures the post store.
type PersistenceConfig struct {
	Driver string `mapstructure:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" json:"dsn"`
}

// LoggingConfig selects level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Plugin: PluginConfig{
			Prefix:  "sewn",
			Name:    "sewn_post_delete",
			Version: "1.0.0",
		},
		Site: SiteConfig{
			HomeURL: "http://localhost:8481/",
		},
		Nonce: NonceConfig{
			Lifetime: 24 * time.Hour,
		},
		Localization: LocalizationConfig{DefaultLocale: "en"},
		Server:       ServerConfig{Addr: "localhost:8481"},
		Persistence: PersistenceConfig{
			Driver: "memory",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Plugin.Prefix) == "" {
		return errors.New("plugin.prefix is required")
	}
	if strings.TrimSpace(c.Plugin.Name) == "" {
		return errors.New("plugin.name is required")
	}
	if c.Plugin.Name != strings.ToLower(c.Plugin.Name) {
		return fmt.Errorf("plugin.name must be lowercase, got %q", c.Plugin.Name)
	}
	if c.Site.HomeURL == "" {
		return errors.New("site.home_url is required")
	}
	if c.Nonce.Lifetime < 0 {
		return fmt.Errorf("nonce.lifetime must be >= 0")
	}
	switch c.Persistence.Driver {
	case "memory":
	case "sqlite":
		if c.Persistence.DSN == "" {
			return errors.New("persistence.dsn is required for sqlite")
		}
	default:
		return fmt.Errorf("persistence.driver %q is not supported", c.Persistence.Driver)
	}
	if c.Localization.DefaultLocale == "" {
		return errors.New("localization.default_locale is required")
	}
	return nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// When cfgx yields a zero value we fall back to a lightweight JSON decoder
// so map inputs (e.g. parsed TOML) still work.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Plugin.Prefix == "" {
		c.Plugin.Prefix = defaults.Plugin.Prefix
	}
	if c.Plugin.Name == "" {
		c.Plugin.Name = defaults.Plugin.Name
	}
	if c.Plugin.Version == "" {
		c.Plugin.Version = defaults.Plugin.Version
	}
	if c.Site.HomeURL == "" {
		c.Site.HomeURL = defaults.Site.HomeURL
	}
	if c.Nonce.Lifetime == 0 {
		c.Nonce.Lifetime = defaults.Nonce.Lifetime
	}
	if c.Localization.DefaultLocale == "" {
		c.Localization.DefaultLocale = defaults.Localization.DefaultLocale
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Persistence.Driver == "" {
		c.Persistence.Driver = defaults.Persistence.Driver
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	normalized, err := normalizeDurations(input)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}

// durationPaths lists the section/key pairs decoded as time.Duration.
var durationPaths = [][2]string{
	{"nonce", "lifetime"},
}

// normalizeDurations converts duration strings ("12h") into nanoseconds so
// the JSON fallback can decode them into time.Duration fields.
func normalizeDurations(input map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}
	for _, path := range durationPaths {
		section, ok := out[path[0]].(map[string]any)
		if !ok {
			continue
		}
		raw, ok := section[path[1]].(string)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path[0], path[1], err)
		}
		copied := make(map[string]any, len(section))
		for k, v := range section {
			copied[k] = v
		}
		copied[path[1]] = int64(d)
		out[path[0]] = copied
	}
	return out, nil
}
