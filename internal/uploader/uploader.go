// Package uploader decides whether a newly finalized media item should be
// synchronized to the CDN, performs the upload, and records the outcome.
// Nothing in here ever propagates a failure to the host's own item
// pipeline: every error path ends in a log line and, at most, a record
// write.
package uploader

import (
	"context"
	"time"

	"github.com/pxl8/mediabridge/internal/config"
	"github.com/pxl8/mediabridge/internal/hashx"
	"github.com/pxl8/mediabridge/internal/host"
	"github.com/pxl8/mediabridge/internal/logging"
	"github.com/pxl8/mediabridge/internal/pxl8"
	"github.com/pxl8/mediabridge/internal/record"
)

// Uploader is the slice of the remote client the coordinator needs.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*pxl8.UploadResult, error)
}

// ClientFactory builds the remote client on demand, so configuration
// errors surface per attempt rather than at wiring time.
type ClientFactory func() (Uploader, error)

type Coordinator struct {
	cfg      *config.Config
	store    record.Store
	client   ClientFactory
	platform host.Platform
	log      logging.Logger

	now      func() time.Time
	hashFile func(path string) (string, error)
}

func New(cfg *config.Config, store record.Store, client ClientFactory, platform host.Platform, log logging.Logger) *Coordinator {
	return &Coordinator{
		cfg:      cfg,
		store:    store,
		client:   client,
		platform: platform,
		log:      log,
		now:      time.Now,
		hashFile: hashx.FileSHA256,
	}
}

// HandleItemFinalized is the handler for host.EventItemMetadataGenerated.
// The meta value is opaque passthrough and is always returned unchanged;
// the coordinator communicates exclusively through the record store.
func (c *Coordinator) HandleItemFinalized(ctx context.Context, meta any, item host.Item) any {
	c.sync(ctx, item)
	return meta
}

// sync runs the upload decision sequence, short-circuiting at the first
// skip condition. Skips are normal and logged at info; upload and store
// failures are recorded and logged but never returned.
func (c *Coordinator) sync(ctx context.Context, item host.Item) {
	if !c.cfg.AutoOptimize {
		c.log.Info(ctx, "auto-optimize disabled, skipping upload", "item_id", item.ID)
		return
	}

	if !c.platform.IsImage(item) {
		c.log.Info(ctx, "item is not an image, skipping", "item_id", item.ID)
		return
	}

	rec, err := c.store.Get(ctx, item.ID)
	if err != nil {
		c.log.Error(ctx, "record read failed", "item_id", item.ID, "error", err.Error())
		return
	}

	// An item with a recorded image id is never re-uploaded, even when the
	// local file has changed since: the processed check runs before
	// hashing to avoid re-consuming upload quota.
	if rec.Processed() {
		c.log.Info(ctx, "item already processed, skipping", "item_id", item.ID, "image_id", rec.ImageID)
		return
	}

	path := c.platform.AttachedFile(item)
	if !c.platform.FileExists(path) {
		c.log.Error(ctx, "source file does not exist", "item_id", item.ID, "path", path)
		return
	}

	newHash, err := c.hashFile(path)
	if err != nil {
		c.log.Error(ctx, "hashing source file failed", "item_id", item.ID, "path", path, "error", err.Error())
		return
	}

	if rec != nil && rec.SourceHash != "" && rec.SourceHash == newHash {
		c.log.Info(ctx, "file hash matches stored hash, skipping duplicate upload", "item_id", item.ID, "hash", newHash)
		return
	}

	if rec == nil {
		rec = &record.Record{}
	}

	size, _ := c.platform.FileSize(path)
	c.log.Info(ctx, "starting upload", "item_id", item.ID, "path", path, "size", size)

	client, err := c.client()
	if err != nil {
		c.recordFailure(ctx, item.ID, rec, err)
		return
	}

	res, err := client.Upload(ctx, path)
	if err != nil {
		c.recordFailure(ctx, item.ID, rec, err)
		return
	}

	rec.MarkUploaded(res.ImageID, newHash, c.now())
	if err := c.store.Put(ctx, item.ID, rec); err != nil {
		c.log.Error(ctx, "record write failed after upload", "item_id", item.ID, "image_id", res.ImageID, "error", err.Error())
		return
	}

	c.log.Info(ctx, "upload succeeded", "item_id", item.ID, "image_id", res.ImageID, "size", res.Size, "format", res.Format)
}

func (c *Coordinator) recordFailure(ctx context.Context, itemID string, rec *record.Record, cause error) {
	rec.MarkFailed(cause.Error())
	if err := c.store.Put(ctx, itemID, rec); err != nil {
		c.log.Error(ctx, "record write failed after upload error", "item_id", itemID, "error", err.Error())
	}
	c.log.Error(ctx, "upload failed", "item_id", itemID, "error", cause.Error())
}
