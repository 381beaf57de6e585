package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "https://img.pxl8.ru", cfg.BaseURL)
	require.Equal(t, "https://api.pxl8.ru", cfg.APIBaseURL)
	require.Empty(t, cfg.APIKey)
	require.False(t, cfg.Enabled)
	require.False(t, cfg.AutoOptimize)
	require.Equal(t, 85, cfg.DefaultQuality)
	require.Equal(t, FormatAuto, cfg.DefaultFormat)
	require.Equal(t, FitCover, cfg.DefaultFit)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"quality too low", func(c *Config) { c.DefaultQuality = 0 }, false},
		{"quality too high", func(c *Config) { c.DefaultQuality = 101 }, false},
		{"unknown format", func(c *Config) { c.DefaultFormat = "bmp" }, false},
		{"unknown fit", func(c *Config) { c.DefaultFit = "stretch" }, false},
		{"webp contain", func(c *Config) { c.DefaultFormat = FormatWebP; c.DefaultFit = FitContain }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
