package bridge

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pxl8/mediabridge/internal/config"
	"github.com/pxl8/mediabridge/internal/host"
	"github.com/pxl8/mediabridge/internal/logging"
	"github.com/pxl8/mediabridge/internal/pxl8"
	"github.com/pxl8/mediabridge/internal/record"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewApp(cfg, record.NewMemStore(), host.OSPlatform{}, log)
}

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestNewApp_RegistersAllHooks(t *testing.T) {
	app := newTestApp(t, baseConfig())

	names := app.Registry().Names()
	require.Equal(t, []string{
		host.EventImageSourceResolved,
		host.EventItemMetadataGenerated,
		host.EventSourceSetComputed,
		host.EventURLResolved,
	}, names)
}

func TestTestConnection_NotConfigured(t *testing.T) {
	app := newTestApp(t, baseConfig()) // no API key

	err := app.TestConnection(context.Background())
	require.ErrorIs(t, err, pxl8.ErrNotConfigured)
}

func TestTestConnection_Succeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"acme"}`))
	}))
	defer srv.Close()

	cfg := baseConfig()
	cfg.APIKey = "test-key"
	cfg.APIBaseURL = srv.URL
	app := newTestApp(t, cfg)

	require.NoError(t, app.TestConnection(context.Background()))
}

func TestPurge_RemovesEveryRecord(t *testing.T) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := record.NewMemStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "1", &record.Record{ImageID: "a"}))
	require.NoError(t, store.Put(ctx, "2", &record.Record{ImageID: "b"}))

	app := NewApp(baseConfig(), store, host.OSPlatform{}, log)
	require.NoError(t, app.Purge(ctx))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
