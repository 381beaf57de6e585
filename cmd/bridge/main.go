package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/pxl8/mediabridge/internal/bridge"
	"github.com/pxl8/mediabridge/internal/config"
	"github.com/pxl8/mediabridge/internal/host"
	"github.com/pxl8/mediabridge/internal/logging"
	"github.com/pxl8/mediabridge/internal/pxl8"
	"github.com/pxl8/mediabridge/internal/quota"
	"github.com/pxl8/mediabridge/internal/record"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	handler := logging.NewRedactingHandler(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog.New(handler))

	ctx := context.Background()

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	app := bridge.NewApp(cfg, store, host.OSPlatform{}, logger)

	switch command() {
	case "ping":
		if err := app.TestConnection(ctx); err != nil {
			return err
		}
		fmt.Println("connection ok")
	case "usage":
		info, err := app.Quota().Usage(ctx, true)
		if err != nil {
			return err
		}
		printUsage(info)
	case "purge":
		if err := app.Purge(ctx); err != nil {
			return err
		}
		fmt.Println("all optimization records deleted")
	default:
		fmt.Println("registered media pipeline hooks:")
		for _, name := range app.Registry().Names() {
			fmt.Println("  " + name)
		}
		fmt.Println("\ncommands: ping | usage | purge")
	}

	return nil
}

// command returns the first non-flag argument, skipping flag values.
func command() string {
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			if !strings.Contains(args[i], "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		return args[i]
	}
	return ""
}

// openStore opens the configured record store backend. A PostgreSQL DSN
// takes precedence; otherwise the sqlite file is used.
func openStore(ctx context.Context, cfg *config.Config) (record.Store, *sql.DB, error) {
	if cfg.DatabaseDSN != "" {
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres: %w", err)
		}
		if err := record.MigratePostgres(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return record.NewPostgresStore(db), db, nil
	}

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, record.SQLiteSchema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return record.NewSQLiteStore(db), db, nil
}

func printUsage(info *pxl8.AccountInfo) {
	rows := []struct {
		label       string
		used, limit int64
	}{
		{"storage", info.StorageUsed, info.StorageLimit},
		{"bandwidth", info.BandwidthUsed, info.BandwidthLimit},
		{"requests", info.RequestsUsed, info.RequestsLimit},
	}

	fmt.Printf("account: %s\n", info.Name)
	for _, row := range rows {
		fmt.Printf("  %-10s %s / %s (%.1f%%)\n",
			row.label, quota.FormatCount(row.used), quota.FormatCount(row.limit), quota.PercentUsed(row.used, row.limit))
	}
}
