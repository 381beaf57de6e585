// Package host abstracts the collaborators the bridge needs from the host
// content-management platform: the media item shape, image classification,
// local file access, and the event registration table.
package host

import (
	"os"
	"strings"
)

// Item is a media item as the host platform presents it. The host owns the
// item; the bridge only annotates it through the record store, keyed by ID.
type Item struct {
	ID        string
	MimeType  string
	LocalPath string
}

// Platform supplies the host-side predicates the bridge depends on.
type Platform interface {
	// IsImage reports the host's classification of the item.
	IsImage(item Item) bool

	// AttachedFile resolves the item to its source file path. The path is
	// transient: it is used at upload time and never persisted.
	AttachedFile(item Item) string

	FileExists(path string) bool
	FileSize(path string) (int64, error)
}

// OSPlatform classifies items by MIME prefix and reads the local filesystem.
type OSPlatform struct{}

func (OSPlatform) IsImage(item Item) bool {
	return strings.HasPrefix(item.MimeType, "image/")
}

func (OSPlatform) AttachedFile(item Item) string {
	return item.LocalPath
}

func (OSPlatform) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (OSPlatform) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
