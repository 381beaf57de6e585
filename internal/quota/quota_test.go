package quota

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pxl8/mediabridge/internal/logging"
	"github.com/pxl8/mediabridge/internal/pxl8"
)

type fakeAPI struct {
	calls int
	info  *pxl8.AccountInfo
	err   error
}

func (f *fakeAPI) AccountInfo(ctx context.Context) (*pxl8.AccountInfo, error) {
	f.calls++
	return f.info, f.err
}

func newService(api *fakeAPI) *Service {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(func() (API, error) { return api, nil }, log)
}

func TestUsage_SecondCallServedFromCache(t *testing.T) {
	api := &fakeAPI{info: &pxl8.AccountInfo{Name: "acme", StorageUsed: 10}}
	s := newService(api)
	ctx := context.Background()

	first, err := s.Usage(ctx, false)
	require.NoError(t, err)
	second, err := s.Usage(ctx, false)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, api.calls)
}

func TestUsage_ForceBypassesCache(t *testing.T) {
	api := &fakeAPI{info: &pxl8.AccountInfo{Name: "acme"}}
	s := newService(api)
	ctx := context.Background()

	_, err := s.Usage(ctx, false)
	require.NoError(t, err)
	_, err = s.Usage(ctx, true)
	require.NoError(t, err)

	require.Equal(t, 2, api.calls)
}

func TestUsage_ErrorNotCached(t *testing.T) {
	api := &fakeAPI{err: errors.New("remote down")}
	s := newService(api)
	ctx := context.Background()

	_, err := s.Usage(ctx, false)
	require.Error(t, err)
	_, err = s.Usage(ctx, false)
	require.Error(t, err)
	require.Equal(t, 2, api.calls)
}

func TestPercentUsed(t *testing.T) {
	require.InDelta(t, 50.0, PercentUsed(50, 100), 0.001)
	require.InDelta(t, 100.0, PercentUsed(250, 100), 0.001)
	require.Zero(t, PercentUsed(10, 0))
}

func TestFormatCount(t *testing.T) {
	require.Equal(t, "999", FormatCount(999))
	require.Equal(t, "1.50K", FormatCount(1500))
	require.Equal(t, "2.25M", FormatCount(2_250_000))
}
