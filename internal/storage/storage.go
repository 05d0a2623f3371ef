// Package storage is the object-storage layer for product images.
package storage

import "context"

// ObjectStore is the contract the asset pipeline writes through. Backends
// must provide upsert put semantics and publicly resolvable URLs.
type ObjectStore interface {
	// Put writes data under path, overwriting any existing object.
	Put(ctx context.Context, path string, data []byte, contentType string) error

	// Remove deletes the object at path. Removing a missing object is not
	// an error.
	Remove(ctx context.Context, path string) error

	// PublicURL resolves the public download URL for path.
	PublicURL(path string) string

	// Ping verifies the bucket is reachable.
	Ping(ctx context.Context) error
}
