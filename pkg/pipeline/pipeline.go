// Package pipeline provides the conversion pipeline shared by the texsvg
// server and the local render command.
//
// # Architecture
//
// A conversion runs three stages:
//
//  1. Classify: match the TeX input against the whitelisted math shapes
//  2. Render: hand the math payload to the external converter
//  3. Rescale: scale the first rendered element and serialize it
//
// Results are cached by content, display mode, scale and converter
// configuration when a cache is configured.
//
// # Usage
//
//	runner := pipeline.NewRunner(conv, nil, nil, logger)
//	svg, err := runner.Convert(ctx, `\(x^2\)`, 2.0)
//
// The request form applies the protocol defaults (scale 1.0 when omitted):
//
//	result, err := runner.Execute(ctx, protocol.Request{Tex: src})
package pipeline

import (
	"time"

	"github.com/matzehuels/texsvg/pkg/tex"
)

// KeyTypeSVG labels conversion entries in cache hooks.
const KeyTypeSVG = "svg"

// Result contains the outputs of a conversion.
type Result struct {
	// SVG is the serialized, rescaled image.
	SVG string

	// Match is the classification of the input.
	Match tex.Match

	// Scale is the scale factor that was applied.
	Scale float64

	// Stats contains timing information.
	Stats Stats

	// CacheHit reports whether SVG came from the cache.
	CacheHit bool
}

// Stats contains conversion timing.
type Stats struct {
	RenderTime  time.Duration
	RescaleTime time.Duration
	Total       time.Duration
}
