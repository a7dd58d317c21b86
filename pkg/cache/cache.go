// Package cache stores derived slide artifacts (connection sets, rendered
// SVGs) keyed by content hash, so re-deriving unchanged slides is free.
//
// Backends:
//   - file: directory-based cache for CLI usage
//   - redis: shared cache for multi-instance server deployments
//   - null: caching disabled
//
// Keys are produced by a [Keyer] so every component hashes identically;
// [ScopedKeyer] prefixes keys for per-user isolation on shared backends.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime for cached artifacts. Derivations are
// cheap to recompute, so entries do not need to live long.
const DefaultTTL = 24 * time.Hour

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL stores
	// the entry without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the artifact types the engine caches.
type Keyer interface {
	// ConnectionsKey keys the derived connection set of a slide snapshot.
	ConnectionsKey(slideHash string) string

	// ArtifactKey keys a rendered artifact (svg, dot, json) of a slide
	// snapshot.
	ArtifactKey(slideHash, format string) string
}

// DefaultKeyer implements the standard key scheme: prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ConnectionsKey generates a key for a slide's derived connections.
func (k *DefaultKeyer) ConnectionsKey(slideHash string) string {
	return hashKey("connections", slideHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(slideHash, format string) string {
	return hashKey("artifact", slideHash, format)
}
