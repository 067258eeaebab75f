// Package client sends conversion requests to a texsvg server.
//
// A conversion is a single POST with no retry and no timeout beyond what
// the caller's context imposes:
//
//	c := client.New("http://127.0.0.1:8080")
//	svg, err := c.Convert(ctx, protocol.NewRequest(`\(x^2\)`, 2))
//
// [Client.ConvertFile] reads the TeX from one file and writes the returned
// image verbatim to another.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/matzehuels/texsvg/pkg/buildinfo"
	"github.com/matzehuels/texsvg/pkg/errors"
	"github.com/matzehuels/texsvg/pkg/httputil"
	"github.com/matzehuels/texsvg/pkg/protocol"
)

// OutputPerm is the permission of files written by ConvertFile.
const OutputPerm = 0o644

// Client talks to one server.
type Client struct {
	// BaseURL is the server root, e.g. "http://127.0.0.1:8080".
	BaseURL string

	// HTTPClient sends the requests. Nil means a client without a timeout.
	HTTPClient *http.Client
}

// New creates a client for baseURL.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: &http.Client{}}
}

// ServerURL builds the base URL for a server listening on host:port.
func ServerURL(host string, port int) (string, error) {
	if err := errors.ValidateHost(host); err != nil {
		return "", err
	}
	if err := errors.ValidatePort(port); err != nil {
		return "", err
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// Convert sends req and returns the server's image.
//
// The response body is parsed regardless of status code. A body that is not
// JSON fails with [protocol.BadResponseMessage]; a response without an
// image fails with the server's error message, or
// [protocol.UnknownErrorMessage] when it has none.
func (c *Client) Convert(ctx context.Context, req protocol.Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", c.BaseURL)
	}
	httpReq.Header.Set("Content-Type", protocol.ContentType)
	httpReq.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, err, "%s", err.Error())
	}
	defer resp.Body.Close()

	data, err := httputil.ReadBody(resp.Body, 0)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, err, "%s", err.Error())
	}

	var out protocol.Response
	if err := httputil.DecodeJSON(data, &out); err != nil {
		return "", errors.Wrap(errors.ErrCodeProtocol, err, protocol.BadResponseMessage)
	}
	if err := out.Err(); err != nil {
		return "", err
	}
	return *out.SVG, nil
}

// ConvertFile converts the TeX in input at scale and writes the image to
// output. Nothing is written when the conversion fails.
func (c *Client) ConvertFile(ctx context.Context, input, output string, scale float64) error {
	tex, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	svg, err := c.Convert(ctx, protocol.NewRequest(string(tex), scale))
	if err != nil {
		return err
	}
	return os.WriteFile(output, []byte(svg), OutputPerm)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
