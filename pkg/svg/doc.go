// Package svg rescales rendered math images.
//
// The external converter reports the size of an image as width and height
// attributes in ex units, and its baseline offset as a vertical-align style
// property, also in ex:
//
//	<svg width="2.282ex" height="2.009ex" style="vertical-align: -0.186ex;" ...>
//
// [Rescale] multiplies those three measurements by a scale factor, rewrites
// the style attribute from the full declaration list so that other
// properties survive unchanged, and serializes the element with its
// subtree. Markup is handled as a golang.org/x/net/html node tree.
//
// A missing or non-ex measurement is reported as
// errors.ErrCodeMalformedRenderOutput: it means the converter broke its
// contract, not that the caller sent bad input.
package svg
