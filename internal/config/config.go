// Package config handles configuration for the bridge, including defaults,
// JSON overlay, and command-line flags.
package config

import "fmt"

// Format is the default output format requested from the CDN.
type Format string

const (
	FormatAuto Format = "auto"
	FormatWebP Format = "webp"
	FormatAVIF Format = "avif"
	FormatJPG  Format = "jpg"
	FormatPNG  Format = "png"
)

// Fit is the default resize mode requested from the CDN.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
	FitFill    Fit = "fill"
	FitCrop    Fit = "crop"
)

// Config holds runtime settings for the bridge.
//
// Fields:
//   - BaseURL: public delivery endpoint used when rewriting media URLs.
//   - APIBaseURL: management API endpoint (uploads, account info).
//   - APIKey: bearer credential for the management API. Empty disables uploads.
//   - Enabled: master switch for URL rewriting.
//   - AutoOptimize: switch for uploading new media items automatically.
//   - DefaultQuality / DefaultFormat / DefaultFit: transform defaults
//     appended to every rewritten URL.
//   - DatabasePath: sqlite file for the record store.
//   - DatabaseDSN: optional PostgreSQL DSN; takes precedence over DatabasePath.
type Config struct {
	BaseURL        string
	APIBaseURL     string
	APIKey         string
	Enabled        bool
	AutoOptimize   bool
	DefaultQuality int
	DefaultFormat  Format
	DefaultFit     Fit
	DatabasePath   string
	DatabaseDSN    string
}

// LoadDefaults populates Config with the documented defaults. Both switches
// start off so that installing the bridge never consumes quota by surprise.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://img.pxl8.ru"
	c.APIBaseURL = "https://api.pxl8.ru"
	c.APIKey = ""
	c.Enabled = false
	c.AutoOptimize = false
	c.DefaultQuality = 85
	c.DefaultFormat = FormatAuto
	c.DefaultFit = FitCover
	c.DatabasePath = "mediabridge.db"
	c.DatabaseDSN = ""
}

// Validate checks the transform defaults against their allowed ranges.
func (c *Config) Validate() error {
	if c.DefaultQuality < 1 || c.DefaultQuality > 100 {
		return fmt.Errorf("default quality %d out of range [1, 100]", c.DefaultQuality)
	}
	switch c.DefaultFormat {
	case FormatAuto, FormatWebP, FormatAVIF, FormatJPG, FormatPNG:
	default:
		return fmt.Errorf("unknown default format %q", c.DefaultFormat)
	}
	switch c.DefaultFit {
	case FitCover, FitContain, FitFill, FitCrop:
	default:
		return fmt.Errorf("unknown default fit %q", c.DefaultFit)
	}
	return nil
}

// Load builds a Config by applying defaults, then overlaying values from an
// optional JSON file and finally from command-line flags.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
