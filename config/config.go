// Package config loads the settings of the command line tool, from
// defaults, an optional configuration file (YAML, JSON or TOML) and
// BOXLAYOUT_ prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/benoitkugler/boxlayout/geom"
	"github.com/benoitkugler/boxlayout/layout"
	"github.com/benoitkugler/boxlayout/logger"
	pr "github.com/benoitkugler/boxlayout/properties"
)

// EnvPrefix is the prefix of the environment variables, so that
// BOXLAYOUT_PAGE_WIDTH overrides page.width.
const EnvPrefix = "BOXLAYOUT"

// Config holds the whole configuration.
type Config struct {
	Page   PageConfig    `mapstructure:"page"`
	Layout LayoutConfig  `mapstructure:"layout"`
	Logger logger.Config `mapstructure:"logger"`
}

// PageConfig is the page geometry, in points.
type PageConfig struct {
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
	Margin float32 `mapstructure:"margin"`
}

// LayoutConfig are the defaults applied to the document root.
type LayoutConfig struct {
	CollapsingMargins bool    `mapstructure:"collapsing_margins"`
	FontSize          float32 `mapstructure:"font_size"`
	// Outlines frames every box when drawing.
	Outlines bool `mapstructure:"outlines"`
}

// SetDefaults registers the default values. A4 pages are used.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("page.width", 595)
	v.SetDefault("page.height", 842)
	v.SetDefault("page.margin", 36)

	v.SetDefault("layout.collapsing_margins", false)
	v.SetDefault("layout.font_size", 12)
	v.SetDefault("layout.outlines", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
}

// NewViper returns a viper instance with the defaults and the
// environment bindings.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns the configuration built from the defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("invalid default configuration: %v", err))
	}
	return &cfg
}

// Load reads the configuration file at path, if not empty, and
// applies the environment overrides.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper decodes and validates the settings of v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the page geometry and the font size.
func (c *Config) Validate() error {
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		return fmt.Errorf("page.width and page.height must be positive")
	}
	if c.Page.Margin < 0 || 2*c.Page.Margin >= c.Page.Width || 2*c.Page.Margin >= c.Page.Height {
		return fmt.Errorf("page.margin must leave a non empty content box")
	}
	if c.Layout.FontSize <= 0 {
		return fmt.Errorf("layout.font_size must be positive")
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}

// PageSize returns the page geometry.
func (c *Config) PageSize() layout.PageSize {
	m := c.Page.Margin
	return layout.PageSize{Width: c.Page.Width, Height: c.Page.Height, Margins: geom.Insets{m, m, m, m}}
}

// RootStyle returns the properties set on the document root.
func (c *Config) RootStyle() pr.Properties {
	return pr.Properties{
		pr.PFontSize:          pr.FToV(c.Layout.FontSize),
		pr.PCollapsingMargins: pr.Bool(c.Layout.CollapsingMargins),
	}
}
