package config

import (
	"flag"
	"os"

	"github.com/pxl8/mediabridge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   delivery base URL
//	-a string   API base URL
//	-k string   API key
//	-e          enable URL rewriting
//	-o          enable auto-optimize on upload
//	-q int      default quality (1-100)
//	-f string   default format (auto, webp, avif, jpg, png)
//	-t string   default fit (cover, contain, fill, crop)
//	-d string   sqlite database path
//	-p string   PostgreSQL DSN for the record store
//
// The args are first filtered to the flags handled here, avoiding collisions
// with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-a", "-k", "-e", "-o", "-q", "-f", "-t", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "delivery base URL")
	fs.StringVar(&config.APIBaseURL, "a", config.APIBaseURL, "API base URL")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "API key")
	fs.BoolVar(&config.Enabled, "e", config.Enabled, "enable URL rewriting")
	fs.BoolVar(&config.AutoOptimize, "o", config.AutoOptimize, "enable auto-optimize")
	fs.IntVar(&config.DefaultQuality, "q", config.DefaultQuality, "default quality (1-100)")

	format := fs.String("f", string(config.DefaultFormat), "default format")
	fit := fs.String("t", string(config.DefaultFit), "default fit")

	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "sqlite database path")
	fs.StringVar(&config.DatabaseDSN, "p", config.DatabaseDSN, "PostgreSQL DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DefaultFormat = Format(*format)
	config.DefaultFit = Fit(*fit)
}
