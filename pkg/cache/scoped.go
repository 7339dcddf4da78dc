package cache

// ScopedKeyer prefixes the keys of another Keyer. The HTTP server uses it so
// its entries never collide with CLI entries in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements [Keyer].
func (k *ScopedKeyer) LayoutKey(tasksHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(tasksHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(tasksHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tasksHash, opts)
}
