// Package blob abstracts where raw document bytes live. Paths are
// slash-separated and namespaced by the caller (temp/<session>/<name> for
// staging, uploads/<user>/<name> once promoted). Two uploads sharing a path
// overwrite each other; intake preserves that last-write-wins behavior.
package blob

import (
	"context"
	"time"
)

// Store persists raw bytes addressed by path and returns a reference usable
// for later reads.
type Store interface {
	// Write stores bytes at path, overwriting any previous content, and
	// returns the storage reference for the object.
	Write(ctx context.Context, path string, data []byte) (string, error)
	// Read returns the bytes previously written at path.
	Read(ctx context.Context, path string) ([]byte, error)
	// Move relocates an object, returning the new storage reference.
	Move(ctx context.Context, fromPath, toPath string) (string, error)
	// RemoveAll deletes every object under the given path prefix.
	RemoveAll(ctx context.Context, prefix string) error
	// StalePrefixes lists first-level prefixes under root whose newest object
	// is older than the cutoff. The sweeper uses this to find abandoned
	// staging sessions.
	StalePrefixes(ctx context.Context, root string, cutoff time.Time) ([]string, error)
}
