// Package protocol defines the JSON messages exchanged between the texsvg
// client and server.
//
// A request is POSTed to the server root:
//
//	{"tex": "\\(x^2\\)", "scale": 2}
//
// and answered with exactly one of
//
//	200 {"svg": "<svg ...>...</svg>"}
//	500 {"error": "No math pattern found in \"...\"."}
//	405 {"error": "Only POST is allowed."}
package protocol

import (
	"fmt"
)

// ContentType is the media type of every request and response body.
const ContentType = "application/json"

// Fixed messages.
const (
	MethodNotAllowedMessage = "Only POST is allowed."
	InternalErrorMessage    = "Internal server error."
	UnknownErrorMessage     = "Unknown error"
	BadResponseMessage      = "Failed to parse server response."
)

// DefaultScale applies when a request omits scale.
const DefaultScale = 1.0

// Request asks the server to convert one TeX fragment.
type Request struct {
	Tex   string   `json:"tex"`
	Scale *float64 `json:"scale,omitempty"`
}

// NewRequest builds a request with an explicit scale.
func NewRequest(tex string, scale float64) Request {
	return Request{Tex: tex, Scale: &scale}
}

// ScaleOrDefault returns the requested scale, or DefaultScale when omitted.
func (r Request) ScaleOrDefault() float64 {
	if r.Scale == nil {
		return DefaultScale
	}
	return *r.Scale
}

// Response carries either a rendered image or an error message, never both.
type Response struct {
	SVG   *string `json:"svg,omitempty"`
	Error *string `json:"error,omitempty"`
}

// Success builds a response carrying svg.
func Success(svg string) Response {
	return Response{SVG: &svg}
}

// Failure builds a response carrying an error message.
func Failure(msg string) Response {
	return Response{Error: &msg}
}

// Validate checks that exactly one of SVG and Error is set.
func (r Response) Validate() error {
	switch {
	case r.SVG != nil && r.Error != nil:
		return fmt.Errorf("response carries both svg and error")
	case r.SVG == nil && r.Error == nil:
		return fmt.Errorf("response carries neither svg nor error")
	}
	return nil
}

// Err returns the failure a response describes, or nil for a success.
// A response without svg and without an error message yields
// UnknownErrorMessage.
func (r Response) Err() error {
	if r.SVG != nil {
		return nil
	}
	if r.Error != nil && *r.Error != "" {
		return &RemoteError{Message: *r.Error}
	}
	return &RemoteError{Message: UnknownErrorMessage}
}

// RemoteError is a failure reported by the server.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }
