package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pxl8/mediabridge/internal/flagx"
)

// jsonConfig is the DTO for the optional JSON config file. Pointer fields
// distinguish "absent" from zero values, so the overlay only touches
// settings the file actually mentions.
type jsonConfig struct {
	BaseURL        *string `json:"base_url"`
	APIBaseURL     *string `json:"api_base_url"`
	APIKey         *string `json:"api_key"`
	Enabled        *bool   `json:"enabled"`
	AutoOptimize   *bool   `json:"auto_optimize"`
	DefaultQuality *int    `json:"default_quality"`
	DefaultFormat  *string `json:"default_format"`
	DefaultFit     *string `json:"default_fit"`
	DatabasePath   *string `json:"database_path"`
	DatabaseDSN    *string `json:"database_dsn"`
}

// parseJSON overlays values from the file named by -c/-config, when given.
func parseJSON(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if c.BaseURL != nil {
		config.BaseURL = *c.BaseURL
	}
	if c.APIBaseURL != nil {
		config.APIBaseURL = *c.APIBaseURL
	}
	if c.APIKey != nil {
		config.APIKey = *c.APIKey
	}
	if c.Enabled != nil {
		config.Enabled = *c.Enabled
	}
	if c.AutoOptimize != nil {
		config.AutoOptimize = *c.AutoOptimize
	}
	if c.DefaultQuality != nil {
		config.DefaultQuality = *c.DefaultQuality
	}
	if c.DefaultFormat != nil {
		config.DefaultFormat = Format(*c.DefaultFormat)
	}
	if c.DefaultFit != nil {
		config.DefaultFit = Fit(*c.DefaultFit)
	}
	if c.DatabasePath != nil {
		config.DatabasePath = *c.DatabasePath
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}

	return nil
}
