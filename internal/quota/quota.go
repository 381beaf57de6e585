// Package quota exposes account usage to the bridge's administrative
// surface, fronted by a short-lived read cache so that dashboard renders do
// not hit the API on every view.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pxl8/mediabridge/internal/logging"
	"github.com/pxl8/mediabridge/internal/pxl8"
)

// API is the slice of the remote client the service needs.
type API interface {
	AccountInfo(ctx context.Context) (*pxl8.AccountInfo, error)
}

// ClientFactory builds the remote client on demand.
type ClientFactory func() (API, error)

const (
	cacheTTL = 5 * time.Minute
	cacheKey = "account"
)

type Service struct {
	client ClientFactory
	cache  *expirable.LRU[string, *pxl8.AccountInfo]
	log    logging.Logger
}

func New(client ClientFactory, log logging.Logger) *Service {
	return &Service{
		client: client,
		cache:  expirable.NewLRU[string, *pxl8.AccountInfo](1, nil, cacheTTL),
		log:    log,
	}
}

// Usage returns the account usage snapshot, served from cache when fresh.
// force bypasses the cache and replaces it with the new snapshot, which is
// the explicit invalidation on the refresh path.
func (s *Service) Usage(ctx context.Context, force bool) (*pxl8.AccountInfo, error) {
	if !force {
		if info, ok := s.cache.Get(cacheKey); ok {
			s.log.Info(ctx, "account usage served from cache")
			return info, nil
		}
	}

	client, err := s.client()
	if err != nil {
		return nil, err
	}

	info, err := client.AccountInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching account usage: %w", err)
	}

	if force {
		s.cache.Remove(cacheKey)
	}
	s.cache.Add(cacheKey, info)

	s.log.Info(ctx, "account usage fetched",
		"storage_used", info.StorageUsed,
		"bandwidth_used", info.BandwidthUsed,
		"requests_used", info.RequestsUsed)
	return info, nil
}

// PercentUsed returns used/limit as a percentage capped at 100. A zero
// limit reads as 0%.
func PercentUsed(used, limit int64) float64 {
	if limit <= 0 {
		return 0
	}
	pct := float64(used) / float64(limit) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatCount renders a counter with a K/M suffix for display.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.2fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
