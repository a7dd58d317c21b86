package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// On a shared backend, different authors' private decks get separate
// cache namespaces.
//
// Example usage:
//
//	// Author-specific keys for private decks
//	authorKeyer := NewScopedKeyer(NewDefaultKeyer(), "author:abc123:")
//
//	// Global keys for published lessons
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ConnectionsKey generates a prefixed key for derived connections.
func (k *ScopedKeyer) ConnectionsKey(slideHash string) string {
	return k.prefix + k.inner.ConnectionsKey(slideHash)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(slideHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(slideHash, format)
}
