// Package record defines the durable per-item optimization state and the
// stores that persist it. The record is the sole source of truth for upload
// idempotency and URL-rewrite eligibility.
package record

import "time"

// Status reflects the outcome of the latest upload attempt, not cumulative
// history: a failed retry flips it to StatusFailed even when a previous
// attempt succeeded.
type Status string

const (
	StatusNone   Status = ""
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Longest error message persisted on a record.
const maxErrorLen = 255

// Record is the optimization state for one media item. It is created lazily
// on the first upload attempt and deleted only on explicit item deletion or
// uninstall.
type Record struct {
	// ImageID is the identifier returned by the CDN. Set iff at least one
	// upload has ever succeeded; never cleared by a failed retry.
	ImageID string `json:"image_id,omitempty"`

	Status    Status `json:"status,omitempty"`
	LastError string `json:"last_error,omitempty"`

	// UploadedAt is the unix time of the first successful upload;
	// LastSyncAt moves on every successful sync. Zero means absent.
	UploadedAt int64 `json:"uploaded_at,omitempty"`
	LastSyncAt int64 `json:"last_sync_at,omitempty"`

	// SourceHash is the "sha256:<hex>" digest of the source file as of the
	// last successful upload.
	SourceHash string `json:"source_hash,omitempty"`
}

// Processed reports whether an upload has ever succeeded for the item.
// Safe on a nil receiver so callers can test a Get result directly.
func (r *Record) Processed() bool {
	return r != nil && r.ImageID != ""
}

// Succeeded reports whether the latest attempt succeeded.
func (r *Record) Succeeded() bool {
	return r != nil && r.Status == StatusOK
}

// MarkUploaded records a successful sync. UploadedAt is set on the first
// success only; LastSyncAt moves every time.
func (r *Record) MarkUploaded(imageID, sourceHash string, now time.Time) {
	r.ImageID = imageID
	r.Status = StatusOK
	r.LastError = ""
	if r.UploadedAt == 0 {
		r.UploadedAt = now.Unix()
	}
	r.LastSyncAt = now.Unix()
	r.SourceHash = sourceHash
}

// MarkFailed records a failed attempt. A previously recorded ImageID is
// kept so the last known good remote asset stays addressable.
func (r *Record) MarkFailed(msg string) {
	r.Status = StatusFailed
	r.LastError = truncate(msg, maxErrorLen)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
