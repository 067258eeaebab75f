// Package server exposes the conversion pipeline over HTTP.
//
// Every request is a POST whose JSON body is a [protocol.Request]. The path
// is ignored. Responses are JSON with exactly one of two fields:
//
//	200 {"svg": "..."}                    conversion succeeded
//	500 {"error": "..."}                  unreadable body, bad JSON or failed conversion
//	405 {"error": "Only POST is allowed."} any other method
//
// Each connection is served on its own goroutine by net/http. Requests
// share only the runner, whose pattern list and converter configuration
// are immutable. There are no timeouts: a request lasts as long as its
// conversion.
//
// # Usage
//
//	srv := server.New(runner, server.Config{Host: "127.0.0.1", Port: 8080}, logger)
//	err := srv.ListenAndServe(ctx) // returns after ctx is cancelled
package server
