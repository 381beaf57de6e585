// Package logging defines the minimal structured-logging interface used
// across the bridge, plus a slog-backed implementation and a handler that
// masks credential-bearing attributes.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "upload succeeded", "item_id", id, "image_id", imageID)
type Logger interface {
	// Info logs an informational message. Normal skips in the upload
	// decision sequence are logged at this level.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
