package converter

import (
	"context"

	"golang.org/x/net/html"
)

// Converter renders TeX math into a markup tree.
//
// Convert returns a container node whose children are the rendered output;
// callers use the first element child as the image root. Implementations
// must be safe for concurrent use. Convert blocks until rendering completes;
// it imposes no timeout of its own.
type Converter interface {
	Convert(ctx context.Context, math string, display bool) (*html.Node, error)
}

// Func adapts an ordinary function to the Converter interface.
type Func func(ctx context.Context, math string, display bool) (*html.Node, error)

// Convert calls f.
func (f Func) Convert(ctx context.Context, math string, display bool) (*html.Node, error) {
	return f(ctx, math, display)
}

// Fingerprinter is implemented by converters whose output depends on
// configuration. The fingerprint is folded into cache keys.
type Fingerprinter interface {
	Fingerprint() string
}
