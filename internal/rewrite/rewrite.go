// Package rewrite substitutes CDN URLs for local media URLs at the host's
// URL-resolution points. The rewriter is stateless: every call re-reads the
// record store, and the same (item, configuration, record) inputs always
// produce the same output. Ineligible items pass through untouched.
package rewrite

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/pxl8/mediabridge/internal/config"
	"github.com/pxl8/mediabridge/internal/host"
	"github.com/pxl8/mediabridge/internal/logging"
	"github.com/pxl8/mediabridge/internal/record"
)

// ImageSource is the (url, width, height) triple the host resolves for a
// sized image lookup.
type ImageSource struct {
	URL    string
	Width  int
	Height int
}

// Source is one responsive-candidate entry, keyed by width in SourceSet.
type Source struct {
	URL        string
	Descriptor string
}

type Rewriter struct {
	cfg      *config.Config
	store    record.Store
	platform host.Platform
	log      logging.Logger
}

func New(cfg *config.Config, store record.Store, platform host.Platform, log logging.Logger) *Rewriter {
	return &Rewriter{cfg: cfg, store: store, platform: platform, log: log}
}

// URL is the handler for host.EventURLResolved: the single-image lookup.
func (rw *Rewriter) URL(ctx context.Context, original string, item host.Item) string {
	if !rw.cfg.Enabled {
		return original
	}
	if !rw.platform.IsImage(item) {
		return original
	}

	rec := rw.eligible(ctx, item)
	if rec == nil {
		return original
	}

	rewritten := rw.buildURL(rec.ImageID, 0, 0)
	rw.log.Info(ctx, "rewrote attachment url", "item_id", item.ID, "original", original, "rewritten", rewritten)
	return rewritten
}

// ImageSource is the handler for host.EventImageSourceResolved. A nil src
// means the host found no image data and is passed through.
func (rw *Rewriter) ImageSource(ctx context.Context, src *ImageSource, item host.Item) *ImageSource {
	if src == nil {
		return src
	}
	if !rw.cfg.Enabled {
		return src
	}

	rec := rw.eligible(ctx, item)
	if rec == nil {
		return src
	}

	out := *src
	out.URL = rw.buildURL(rec.ImageID, src.Width, src.Height)
	return &out
}

// SourceSet is the handler for host.EventSourceSetComputed. Each entry is
// rewritten against its width key, height omitted; the key set is preserved.
func (rw *Rewriter) SourceSet(ctx context.Context, sources map[int]Source, item host.Item) map[int]Source {
	if len(sources) == 0 {
		return sources
	}
	if !rw.cfg.Enabled {
		return sources
	}

	rec := rw.eligible(ctx, item)
	if rec == nil {
		return sources
	}

	out := make(map[int]Source, len(sources))
	for width, src := range sources {
		src.URL = rw.buildURL(rec.ImageID, width, 0)
		out[width] = src
	}
	rw.log.Info(ctx, "rewrote source set", "item_id", item.ID, "source_count", len(out))
	return out
}

// eligible returns the item's record when rewriting is permitted: latest
// attempt succeeded and an image id is present. A record read failure makes
// the item ineligible rather than surfacing an error on the render path.
func (rw *Rewriter) eligible(ctx context.Context, item host.Item) *record.Record {
	rec, err := rw.store.Get(ctx, item.ID)
	if err != nil {
		rw.log.Warn(ctx, "record read failed, passing original url through", "item_id", item.ID, "error", err.Error())
		return nil
	}
	if !rec.Succeeded() || rec.ImageID == "" {
		return nil
	}
	return rec
}

// buildURL produces the CDN URL for an image id and optional dimensions.
// The query string is assembled by hand: url.Values sorts keys, and the
// parameter order (w, h, fit, format, quality) is part of the contract.
func (rw *Rewriter) buildURL(imageID string, width, height int) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(rw.cfg.BaseURL, "/"))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(imageID))

	params := make([]string, 0, 5)
	if width > 0 {
		params = append(params, "w="+strconv.Itoa(width))
	}
	if height > 0 {
		params = append(params, "h="+strconv.Itoa(height))
	}
	params = append(params, "fit="+url.QueryEscape(string(rw.cfg.DefaultFit)))
	params = append(params, "format="+url.QueryEscape(string(rw.cfg.DefaultFormat)))
	params = append(params, "quality="+strconv.Itoa(rw.cfg.DefaultQuality))

	b.WriteByte('?')
	b.WriteString(strings.Join(params, "&"))
	return b.String()
}
