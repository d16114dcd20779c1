// Package cache provides caching for rendered scene artifacts.
//
// The Cache interface abstracts over storage backends:
//   - FileCache: file-based cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op cache for tests or when caching is disabled
//
// Keys are built by a Keyer so every caller derives them the same way. The
// document and diagram keys hash the scene content, which makes cached
// artifacts immune to renaming or moving the source file.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any backend resources.
	Close() error
}

// Keyer builds cache keys for the artifact kinds scenesmith caches.
type Keyer interface {
	// DocumentKey keys a rendered document by scene content hash, target
	// format, and name separator.
	DocumentKey(sceneHash, format, separator string) string
	// GraphKey keys a kinematic diagram by scene content hash and label
	// detail.
	GraphKey(sceneHash string, detailed bool) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for rendered document caching.
func (k *DefaultKeyer) DocumentKey(sceneHash, format, separator string) string {
	return hashKey("doc", sceneHash, format, separator)
}

// GraphKey generates a key for kinematic diagram caching.
func (k *DefaultKeyer) GraphKey(sceneHash string, detailed bool) string {
	return hashKey("graph", sceneHash, detailed)
}
