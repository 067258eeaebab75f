package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments or
// renderer versions can share one Redis or MongoDB backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "texsvg:prod:")
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

// ConversionKey generates a prefixed conversion key.
func (k *ScopedKeyer) ConversionKey(opts ConversionKeyOpts) string {
	return k.prefix + k.inner.ConversionKey(opts)
}
