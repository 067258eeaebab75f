// Package pkg provides the core libraries for texsvg.
//
// # Overview
//
// texsvg turns a standalone TeX math expression into an SVG image whose
// dimensions are expressed in ex units. The pkg directory is organized into
// three areas:
//
//  1. Conversion: [tex], [converter], [svg] and [pipeline]
//  2. Transport: [protocol], [server], [client] and [httputil]
//  3. Infrastructure: [cache], [errors], [observability] and [buildinfo]
//
// # Architecture
//
// A conversion flows through:
//
//	TeX text
//	   ↓
//	[tex] Classify (whitelisted delimiters → math payload + display mode)
//	   ↓
//	[converter] external renderer (payload → container of SVG markup)
//	   ↓
//	[svg] Rescale (width, height and vertical-align multiplied by the scale)
//	   ↓
//	serialized <svg> element
//
// [pipeline] runs these stages behind an optional [cache]. The [server]
// exposes the pipeline as a JSON-over-HTTP endpoint and the [client] sends
// files to it.
//
// # Quick Start
//
//	conv, _ := converter.NewExec(converter.DefaultConfig(), logger)
//	runner := pipeline.NewRunner(conv, nil, nil, logger)
//	svg, err := runner.Convert(ctx, `\(x^2\)`, 2.0)
//
// Serve conversions over HTTP:
//
//	srv := server.New(runner, server.Config{Port: 8080}, logger)
//	err := srv.ListenAndServe(ctx)
//
// Convert a file against a running server:
//
//	c := client.New("http://127.0.0.1:8080")
//	err := c.ConvertFile(ctx, "equation.tex", "equation.svg", 1.5)
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/svg/...      # Specific package
//	go test -run Example ./... # Examples only
//
// [tex]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/tex
// [converter]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/converter
// [svg]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/svg
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/pipeline
// [protocol]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/protocol
// [server]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/server
// [client]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/client
// [httputil]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/httputil
// [cache]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/texsvg/pkg/buildinfo
package pkg
