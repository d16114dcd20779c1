package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. A shared
// Redis instance can then serve several deployments without key clashes.
//
// Example usage:
//
//	// Deployment-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed key for rendered document caching.
func (k *ScopedKeyer) DocumentKey(sceneHash, format, separator string) string {
	return k.prefix + k.inner.DocumentKey(sceneHash, format, separator)
}

// GraphKey generates a prefixed key for kinematic diagram caching.
func (k *ScopedKeyer) GraphKey(sceneHash string, detailed bool) string {
	return k.prefix + k.inner.GraphKey(sceneHash, detailed)
}
