// Package bridge wires the components together and registers the media
// pipeline handlers with the host's event table. It also carries the
// interactive operations, which unlike the pipeline handlers do surface
// errors to their caller.
package bridge

import (
	"context"
	"fmt"

	"github.com/pxl8/mediabridge/internal/config"
	"github.com/pxl8/mediabridge/internal/host"
	"github.com/pxl8/mediabridge/internal/logging"
	"github.com/pxl8/mediabridge/internal/pxl8"
	"github.com/pxl8/mediabridge/internal/quota"
	"github.com/pxl8/mediabridge/internal/record"
	"github.com/pxl8/mediabridge/internal/rewrite"
	"github.com/pxl8/mediabridge/internal/uploader"
)

type App struct {
	cfg      *config.Config
	store    record.Store
	platform host.Platform
	log      logging.Logger

	coordinator *uploader.Coordinator
	rewriter    *rewrite.Rewriter
	quota       *quota.Service
	registry    *host.Registry
}

func NewApp(cfg *config.Config, store record.Store, platform host.Platform, log logging.Logger) *App {
	app := &App{
		cfg:      cfg,
		store:    store,
		platform: platform,
		log:      log,
		registry: host.NewRegistry(),
	}

	app.coordinator = uploader.New(cfg, store, func() (uploader.Uploader, error) {
		return app.newClient()
	}, platform, log)

	app.rewriter = rewrite.New(cfg, store, platform, log)

	app.quota = quota.New(func() (quota.API, error) {
		return app.newClient()
	}, log)

	app.registerHooks()
	return app
}

func (a *App) newClient() (*pxl8.Client, error) {
	return pxl8.New(pxl8.Config{
		APIBaseURL: a.cfg.APIBaseURL,
		APIKey:     a.cfg.APIKey,
	})
}

// registerHooks fills the event table the host's dispatcher reads from.
func (a *App) registerHooks() {
	a.registry.Register(host.EventItemMetadataGenerated, a.coordinator.HandleItemFinalized)
	a.registry.Register(host.EventURLResolved, a.rewriter.URL)
	a.registry.Register(host.EventImageSourceResolved, a.rewriter.ImageSource)
	a.registry.Register(host.EventSourceSetComputed, a.rewriter.SourceSet)
}

// Registry exposes the event table for the host's dispatcher.
func (a *App) Registry() *host.Registry {
	return a.registry
}

// Coordinator exposes the upload coordinator for direct wiring.
func (a *App) Coordinator() *uploader.Coordinator {
	return a.coordinator
}

// Rewriter exposes the URL rewriter for direct wiring.
func (a *App) Rewriter() *rewrite.Rewriter {
	return a.rewriter
}

// Quota exposes the account-usage service.
func (a *App) Quota() *quota.Service {
	return a.quota
}

// TestConnection builds a client from the current configuration and probes
// the API. Interactive: configuration and connectivity errors come back to
// the caller as-is.
func (a *App) TestConnection(ctx context.Context) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	a.log.Info(ctx, "connection test succeeded", "api_base_url", a.cfg.APIBaseURL)
	return nil
}

// Purge deletes every optimization record. Remote assets are untouched;
// the CDN keeps its own storage.
func (a *App) Purge(ctx context.Context) error {
	if err := a.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("purging records: %w", err)
	}
	a.log.Info(ctx, "all optimization records deleted")
	return nil
}
