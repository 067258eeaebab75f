// Package converter connects texsvg to the external TeX-to-SVG renderer.
//
// The renderer is a black box with a narrow contract: given a math string and
// a display-mode flag it either fails or produces a tree whose first element
// is an <svg> carrying width and height attributes and a vertical-align style
// property, all in ex units.
//
// [Converter] is that contract. [ExecConverter] satisfies it by running a
// command-line renderer (MathJax's tex2svg by default) once per call, and
// [Func] adapts a plain function for tests and embedding.
//
// Renderer-wide settings such as macro definitions live in an immutable
// [Config] built once at startup, optionally from a TOML file:
//
//	command = ["tex2svg"]
//	inline_args = ["--inline"]
//
//	[macros.abs]
//	body = '\left|#1\right|'
//	args = 1
package converter
