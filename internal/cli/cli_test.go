package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/matzehuels/texsvg/pkg/cache"
	"github.com/matzehuels/texsvg/pkg/converter"
	"github.com/matzehuels/texsvg/pkg/pipeline"
	"github.com/matzehuels/texsvg/pkg/server"
	"github.com/matzehuels/texsvg/pkg/tex"
)

// fakeRendererConfig writes a converter config whose command prints a fixed
// image regardless of its arguments.
func fakeRendererConfig(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "converter.toml")
	cfg := `command = ["sh", "-c", "printf '%s' '<svg width=\"1ex\" height=\"2ex\" style=\"vertical-align: -0.5ex;\"></svg>'", "tex2svg"]
inline_args = []
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
	for _, name := range []string{"serve", "client", "render", "patterns", "cache", "completion"} {
		findCommand(t, root, name)
	}
}

func TestFlagDefaults(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	tests := []struct {
		command string
		flag    string
		short   string
		want    string
	}{
		{"client", "input", "i", ""},
		{"client", "output", "o", "./output.svg"},
		{"client", "scale", "s", "1"},
		{"client", "port", "p", "0"},
		{"client", "host", "n", "127.0.0.1"},
		{"serve", "port", "p", "0"},
		{"serve", "host", "n", "127.0.0.1"},
		{"serve", "config", "c", ""},
		{"serve", "max-body", "", "0"},
		{"render", "output", "o", "./output.svg"},
		{"render", "no-cache", "", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			f := findCommand(t, root, tt.command).Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("flag --%s missing", tt.flag)
			}
			if f.DefValue != tt.want {
				t.Errorf("--%s default = %q, want %q", tt.flag, f.DefValue, tt.want)
			}
			if f.Shorthand != tt.short {
				t.Errorf("--%s shorthand = %q, want %q", tt.flag, f.Shorthand, tt.short)
			}
		})
	}
}

func TestClientRequiresInput(t *testing.T) {
	err := execute(t, "client", "-p", "8080")
	if err == nil || !strings.Contains(err.Error(), "input") {
		t.Errorf("error = %v, want missing --input", err)
	}
}

func TestServeRequiresPort(t *testing.T) {
	t.Setenv(envPort, "")
	err := execute(t, "serve")
	if err == nil || !strings.Contains(err.Error(), envPort) {
		t.Errorf("error = %v, want missing port", err)
	}
}

func TestClientCommand(t *testing.T) {
	conv := converter.Func(func(ctx context.Context, math string, display bool) (*html.Node, error) {
		return converter.Wrap(`<svg width="1ex" height="2ex" style="vertical-align: -0.5ex;"></svg>`)
	})
	runner := pipeline.NewRunner(conv, nil, nil, newLogger(io.Discard, LogInfo))
	ts := httptest.NewServer(server.New(runner, server.Config{}, runner.Logger).Handler())
	defer ts.Close()
	port := ts.Listener.Addr().(*net.TCPAddr).Port

	dir := t.TempDir()
	in := filepath.Join(dir, "eq.tex")
	out := filepath.Join(dir, "eq.svg")
	os.WriteFile(in, []byte(`\(x^2\)`), 0o644)

	if err := execute(t, "client", "-i", in, "-o", out, "-s", "3", "-p", strconv.Itoa(port)); err != nil {
		t.Fatalf("client error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := `<svg width="3ex" height="6ex" style="vertical-align: -1.5ex;"></svg>`
	if string(got) != want {
		t.Errorf("output = %s, want %s", got, want)
	}
}

func TestClientCommandServerError(t *testing.T) {
	conv := converter.Func(func(ctx context.Context, math string, display bool) (*html.Node, error) {
		return converter.Wrap(`<svg></svg>`)
	})
	runner := pipeline.NewRunner(conv, nil, nil, newLogger(io.Discard, LogInfo))
	ts := httptest.NewServer(server.New(runner, server.Config{}, runner.Logger).Handler())
	defer ts.Close()
	port := ts.Listener.Addr().(*net.TCPAddr).Port

	dir := t.TempDir()
	in := filepath.Join(dir, "plain.tex")
	os.WriteFile(in, []byte("plain text"), 0o644)

	err := execute(t, "client", "-i", in, "-o", filepath.Join(dir, "out.svg"), "-p", strconv.Itoa(port))
	if err == nil || err.Error() != `No math pattern found in "plain text".` {
		t.Errorf("error = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	cfg := fakeRendererConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "eq.tex")
	out := filepath.Join(dir, "eq.svg")
	os.WriteFile(in, []byte("\\begin{align}\n a &= b \\\\\n c &= d\n\\end{align}\n"), 0o644)

	if err := execute(t, "render", "-i", in, "-o", out, "-s", "2", "-c", cfg, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := `<svg width="2ex" height="4ex" style="vertical-align: -1ex;"></svg>`
	if string(got) != want {
		t.Errorf("output = %s, want %s", got, want)
	}
}

func TestRenderCommandUsesCache(t *testing.T) {
	cfg := fakeRendererConfig(t)
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	dir := t.TempDir()
	in := filepath.Join(dir, "eq.tex")
	os.WriteFile(in, []byte(`\[ y \]`), 0o644)

	if err := execute(t, "render", "-i", in, "-o", filepath.Join(dir, "a.svg"), "-c", cfg); err != nil {
		t.Fatalf("render error: %v", err)
	}

	fc, err := cache.NewFileCache(filepath.Join(cacheHome, appName))
	if err != nil {
		t.Fatal(err)
	}
	count, err := fc.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("cache held %d entries after one render, want 1", count)
	}
}

func TestRenderCommandRejectsInput(t *testing.T) {
	cfg := fakeRendererConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "eq.tex")
	out := filepath.Join(dir, "eq.svg")
	os.WriteFile(in, []byte("$x$"), 0o644)

	err := execute(t, "render", "-i", in, "-o", out, "-c", cfg, "--no-cache")
	if err == nil {
		t.Fatal("render should reject dollar-delimited math")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no output should be written on failure")
	}
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "__start_texsvg"},
		{"zsh", "#compdef texsvg"},
		{"fish", "complete -c texsvg"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", tt.shell})
			root.SetOut(&out)
			root.SetErr(io.Discard)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("%s completion does not contain %q", tt.shell, tt.want)
			}
		})
	}

	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion should reject an unsupported shell")
	}
}

func TestFileFlagsCompleteFilenames(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	tests := []struct {
		command string
		flag    string
		ext     string
	}{
		{"client", "input", "tex"},
		{"client", "output", "svg"},
		{"render", "input", "tex"},
		{"render", "output", "svg"},
		{"render", "config", "toml"},
		{"serve", "config", "toml"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			f := findCommand(t, root, tt.command).Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("flag --%s not defined", tt.flag)
			}
			exts := f.Annotations[cobra.BashCompFilenameExt]
			if len(exts) != 1 || exts[0] != tt.ext {
				t.Errorf("--%s completes %v, want [%s]", tt.flag, exts, tt.ext)
			}
		})
	}
}

func TestPatternsCommand(t *testing.T) {
	if err := execute(t, "patterns", `\(x\)`); err != nil {
		t.Errorf("patterns with inline math: %v", err)
	}
	if err := execute(t, "patterns", "x"); err == nil {
		t.Error("patterns should fail for input outside the whitelist")
	}
}

func TestRenderPatterns(t *testing.T) {
	out := renderPatterns(tex.Patterns())
	for _, p := range tex.Patterns() {
		if !strings.Contains(out, p.Name) {
			t.Errorf("table missing %s:\n%s", p.Name, out)
		}
	}
}

func TestFormatConversion(t *testing.T) {
	if got := formatConversion("inline-parenthesis", 2, true); !strings.Contains(got, iconCached) {
		t.Errorf("cached conversion should be marked: %q", got)
	}
	if got := formatConversion("inline-parenthesis", 2, false); !strings.Contains(got, iconFresh) {
		t.Errorf("fresh conversion should be marked: %q", got)
	}
}

func TestCacheClearCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	fc, err := cache.NewFileCache(filepath.Join(cacheHome, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	fc.Set(ctx, "svg:a", []byte("<svg></svg>"), time.Hour)
	fc.Set(ctx, "svg:b", []byte("<svg></svg>"), time.Hour)

	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, "svg:a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestSpinnerStop(t *testing.T) {
	s := newSpinner(context.Background(), io.Discard, "Rendering")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, io.Discard, "Rendering")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() blocked after context cancellation")
	}
}
