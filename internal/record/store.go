package record

import "context"

// Store persists one Record per media item id.
//
// Implementations must make Put a single-statement upsert so the
// read-modify-write of one item's record cannot interleave into a corrupt
// row under concurrent writers.
type Store interface {
	// Get returns the record for itemID, or (nil, nil) when none exists.
	Get(ctx context.Context, itemID string) (*Record, error)

	// Put creates or replaces the record for itemID.
	Put(ctx context.Context, itemID string, rec *Record) error

	// Delete removes the record for itemID. Deleting an absent record is
	// not an error.
	Delete(ctx context.Context, itemID string) error

	// DeleteAll removes every record. Used by uninstall.
	DeleteAll(ctx context.Context) error

	// List returns all records keyed by item id.
	List(ctx context.Context) (map[string]*Record, error)
}
