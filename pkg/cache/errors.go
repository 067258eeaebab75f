package cache

import "errors"

// ErrUnsupportedBackend is returned by Open for an unknown URL scheme.
var ErrUnsupportedBackend = errors.New("unsupported cache backend")
