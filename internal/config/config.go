// Package config handles configuration loading and shared settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/woozymasta/touristmeta/internal/dataset"
	"github.com/woozymasta/touristmeta/internal/geo"

	"gopkg.in/yaml.v3"
)

// QR image formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// RegionPlaceholder is substituted with the region name in QR settings.
const RegionPlaceholder = "{region}"

// Config represents the root configuration file structure.
type Config struct {
	Bounds   Bounds   `yaml:"bounds"`
	QR       QR       `yaml:"qr"`
	Optimize Optimize `yaml:"optimize"`
	Compress Compress `yaml:"compress"`
}

// Bounds configures the center/bounds augmentation.
type Bounds struct {
	Placement dataset.Placement `yaml:"placement,omitempty"`
	Order     geo.Order         `yaml:"order,omitempty"`
	Style     dataset.Style     `yaml:"style,omitempty"`
	Precision *int              `yaml:"precision,omitempty"`

	// false keeps bounds coordinates at full precision
	RoundBounds *bool `yaml:"round_bounds,omitempty"`
}

// QR configures QR code generation.
type QR struct {
	URLPrefix string `yaml:"url_prefix,omitempty"`
	Input     string `yaml:"input,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	Format    string `yaml:"format,omitempty"`
	Level     string `yaml:"level,omitempty"`
	Size      int    `yaml:"size,omitempty"`
	Label     bool   `yaml:"label,omitempty"`
}

// Optimize configures conversion of place photos and icons to WebP.
// Directories are relative to the place directory.
type Optimize struct {
	SourceDir string  `yaml:"source_dir,omitempty"`
	OutputDir string  `yaml:"output_dir,omitempty"`
	IconSize  int     `yaml:"icon_size,omitempty"`
	Scale     float64 `yaml:"scale,omitempty"`
	Quality   float32 `yaml:"quality,omitempty"`
}

// Compress configures archiving of a generated region directory.
type Compress struct {
	SourceDir string `yaml:"source_dir,omitempty"`
	Output    string `yaml:"output,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// Unset values fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bounds.Placement == "" {
		c.Bounds.Placement = dataset.PlacementMeta
	}
	if c.Bounds.Order == "" {
		c.Bounds.Order = geo.OrderHull
	}
	if c.Bounds.Style == "" {
		c.Bounds.Style = dataset.StyleIndent
	}
	if c.Bounds.Precision == nil {
		p := geo.DefaultPrecision
		c.Bounds.Precision = &p
	}
	if c.Bounds.RoundBounds == nil {
		round := true
		c.Bounds.RoundBounds = &round
	}

	if c.QR.URLPrefix == "" {
		c.QR.URLPrefix = "https://otwartaturystyka.pl/regions/{region}/places"
	}
	if c.QR.Input == "" {
		c.QR.Input = "generated/{region}/data.json"
	}
	if c.QR.OutputDir == "" {
		c.QR.OutputDir = "generated_qrcodes/{region}"
	}
	if c.QR.Format == "" {
		c.QR.Format = FormatPNG
	}
	if c.QR.Level == "" {
		c.QR.Level = "medium"
	}
	if c.QR.Size <= 0 {
		c.QR.Size = 256
	}

	if c.Optimize.SourceDir == "" {
		c.Optimize.SourceDir = "images/original"
	}
	if c.Optimize.OutputDir == "" {
		c.Optimize.OutputDir = "images/compressed"
	}
	if c.Optimize.IconSize <= 0 {
		c.Optimize.IconSize = 512
	}
	if c.Optimize.Scale == 0 {
		c.Optimize.Scale = 0.25
	}
	if c.Optimize.Quality == 0 {
		c.Optimize.Quality = 75
	}

	if c.Compress.SourceDir == "" {
		c.Compress.SourceDir = "generated/{region}"
	}
	if c.Compress.Output == "" {
		c.Compress.Output = "compressed/{region}.zip"
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Bounds.Placement {
	case dataset.PlacementMeta, dataset.PlacementRoot:
	default:
		return fmt.Errorf("bounds.placement: unknown value %q", c.Bounds.Placement)
	}

	switch c.Bounds.Order {
	case geo.OrderHull, geo.OrderIndex:
	default:
		return fmt.Errorf("bounds.order: unknown value %q", c.Bounds.Order)
	}

	switch c.Bounds.Style {
	case dataset.StyleIndent, dataset.StyleMinify:
	default:
		return fmt.Errorf("bounds.style: unknown value %q", c.Bounds.Style)
	}

	if p := *c.Bounds.Precision; p < 0 || p > 15 {
		return fmt.Errorf("bounds.precision: %d out of range 0..15", p)
	}

	switch c.QR.Format {
	case FormatPNG, FormatWebP:
	default:
		return fmt.Errorf("qr.format: unknown value %q", c.QR.Format)
	}

	switch strings.ToLower(c.QR.Level) {
	case "low", "medium", "high", "highest":
	default:
		return fmt.Errorf("qr.level: unknown value %q", c.QR.Level)
	}

	if c.Optimize.Scale <= 0 || c.Optimize.Scale > 1 {
		return fmt.Errorf("optimize.scale: %v out of range (0, 1]", c.Optimize.Scale)
	}
	if c.Optimize.Quality < 0 || c.Optimize.Quality > 100 {
		return fmt.Errorf("optimize.quality: %v out of range 0..100", c.Optimize.Quality)
	}

	return nil
}

// AugmentOptions converts the bounds settings into geo options.
func (b Bounds) AugmentOptions() geo.Options {
	return geo.Options{
		Order:     b.Order,
		Precision: b.Precision,
		RawBounds: !*b.RoundBounds,
	}
}

// ForRegion substitutes the region name into a templated path or URL.
func ForRegion(template, region string) string {
	return strings.ReplaceAll(template, RegionPlaceholder, region)
}
