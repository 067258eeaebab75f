package client

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/matzehuels/texsvg/pkg/buildinfo"
	"github.com/matzehuels/texsvg/pkg/converter"
	"github.com/matzehuels/texsvg/pkg/errors"
	"github.com/matzehuels/texsvg/pkg/httputil"
	"github.com/matzehuels/texsvg/pkg/pipeline"
	"github.com/matzehuels/texsvg/pkg/protocol"
	"github.com/matzehuels/texsvg/pkg/server"
)

func rawServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestConvertResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr string
	}{
		{"svg", 200, `{"svg":"<svg></svg>"}`, "<svg></svg>", ""},
		{"svg on error status", 500, `{"svg":"<svg></svg>"}`, "<svg></svg>", ""},
		{"server error", 500, `{"error":"No math pattern found in \"x\"."}`, "", `No math pattern found in "x".`},
		{"empty object", 200, `{}`, "", "Unknown error"},
		{"empty error", 500, `{"error":""}`, "", "Unknown error"},
		{"not json", 502, `<html>Bad Gateway</html>`, "", "Failed to parse server response."},
		{"empty body", 200, ``, "", "Failed to parse server response."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := rawServer(t, tt.status, tt.body)
			got, err := New(ts.URL).Convert(context.Background(), protocol.NewRequest(`\(x\)`, 1))

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Convert() = %q, want error %q", got, tt.wantErr)
				}
				if msg := errors.UserMessage(err); msg != tt.wantErr {
					t.Errorf("error = %q, want %q", msg, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Convert() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertBadResponseCode(t *testing.T) {
	ts := rawServer(t, 200, `nope`)
	_, err := New(ts.URL).Convert(context.Background(), protocol.Request{Tex: "x"})
	if !errors.Is(err, errors.ErrCodeProtocol) {
		t.Errorf("error = %v, want PROTOCOL_ERROR", err)
	}
}

func TestConvertRemoteError(t *testing.T) {
	ts := rawServer(t, 500, `{"error":"boom"}`)
	_, err := New(ts.URL).Convert(context.Background(), protocol.Request{Tex: "x"})

	var remote *protocol.RemoteError
	if !stderrors.As(err, &remote) || remote.Message != "boom" {
		t.Errorf("error = %#v, want RemoteError boom", err)
	}
}

func TestConvertSendsRequest(t *testing.T) {
	var got protocol.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != protocol.ContentType {
			t.Errorf("Content-Type = %q", ct)
		}
		if ua := r.Header.Get("User-Agent"); ua != buildinfo.UserAgent() {
			t.Errorf("User-Agent = %q, want %q", ua, buildinfo.UserAgent())
		}
		data, _ := io.ReadAll(r.Body)
		if err := httputil.DecodeJSON(data, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, `{"svg":"ok"}`)
	}))
	defer ts.Close()

	if _, err := New(ts.URL).Convert(context.Background(), protocol.NewRequest(`\[y\]`, 1.5)); err != nil {
		t.Fatal(err)
	}
	if got.Tex != `\[y\]` || got.ScaleOrDefault() != 1.5 {
		t.Errorf("server received %+v", got)
	}
}

func TestConvertTransportError(t *testing.T) {
	ts := rawServer(t, 200, `{}`)
	url := ts.URL
	ts.Close()

	_, err := New(url).Convert(context.Background(), protocol.Request{Tex: "x"})
	if !errors.Is(err, errors.ErrCodeTransport) {
		t.Errorf("error = %v, want TRANSPORT_ERROR", err)
	}
}

func TestConvertFileRoundTrip(t *testing.T) {
	native := `<svg width="1.5ex" height="2ex" style="color: red; vertical-align: -0.5ex;"><g></g></svg>`
	conv := converter.Func(func(ctx context.Context, math string, display bool) (*html.Node, error) {
		return converter.Wrap(native)
	})
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(conv, nil, nil, logger)
	ts := httptest.NewServer(server.New(runner, server.Config{}, logger).Handler())
	defer ts.Close()

	dir := t.TempDir()
	in := filepath.Join(dir, "eq.tex")
	out := filepath.Join(dir, "eq.svg")
	if err := os.WriteFile(in, []byte("\\begin{equation}\n  e^{i\\pi} = -1\n\\end{equation}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(ts.URL)
	if err := c.ConvertFile(context.Background(), in, out, 2); err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := `<svg width="3ex" height="4ex" style="color: red; vertical-align: -1ex;"><g></g></svg>`
	if string(written) != want {
		t.Errorf("file = %s, want %s", written, want)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o644 != 0o644 {
		t.Errorf("file mode = %v", perm)
	}
}

func TestConvertFileFailureWritesNothing(t *testing.T) {
	ts := rawServer(t, 500, `{"error":"No math pattern found in \"plain\"."}`)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.tex")
	out := filepath.Join(dir, "out.svg")
	os.WriteFile(in, []byte("plain"), 0o644)

	err := New(ts.URL).ConvertFile(context.Background(), in, out, 1)
	if err == nil {
		t.Fatal("ConvertFile() should fail")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output file should not exist, stat error = %v", statErr)
	}
}

func TestConvertFileMissingInput(t *testing.T) {
	err := New("http://127.0.0.1:1").ConvertFile(context.Background(), filepath.Join(t.TempDir(), "missing.tex"), "out.svg", 1)
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		host    string
		port    int
		want    string
		wantErr bool
	}{
		{"127.0.0.1", 8080, "http://127.0.0.1:8080", false},
		{"localhost", 3000, "http://localhost:3000", false},
		{"::1", 80, "http://[::1]:80", false},
		{"", 80, "", true},
		{"127.0.0.1", 0, "", true},
		{"127.0.0.1", 70000, "", true},
		{"example.com/path", 80, "", true},
	}

	for _, tt := range tests {
		got, err := ServerURL(tt.host, tt.port)
		if (err != nil) != tt.wantErr {
			t.Errorf("ServerURL(%q, %d) error = %v, wantErr %v", tt.host, tt.port, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ServerURL(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}
