package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	texerrors "github.com/matzehuels/texsvg/pkg/errors"
	"github.com/matzehuels/texsvg/pkg/svg"
)

// ContainerElement is the name of the node wrapping a renderer's output.
const ContainerElement = "mjx-container"

// ExecConverter renders math by running an external command once per call.
// The math (prefixed with the macro preamble) is passed as the last argument,
// after a "--" separator, and the command prints the rendered markup on stdout.
type ExecConverter struct {
	cfg    Config
	logger *log.Logger
}

// NewExec creates a converter for cfg. The configuration is copied; later
// changes to cfg do not affect the converter.
func NewExec(cfg Config, logger *log.Logger) (*ExecConverter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ExecConverter{cfg: cfg.clone(), logger: logger}, nil
}

// Available reports whether the configured command can be found.
func (c *ExecConverter) Available() error {
	if _, err := exec.LookPath(c.cfg.Command[0]); err != nil {
		return fmt.Errorf("converter command %q: %w", c.cfg.Command[0], err)
	}
	return nil
}

// Fingerprint identifies the converter configuration.
func (c *ExecConverter) Fingerprint() string { return c.cfg.Fingerprint() }

// Convert runs the renderer and wraps its output in a container element.
//
// A renderer that exits non-zero fails with ErrCodeConverterFailure; the
// message is the renderer's own diagnostic output, unchanged.
func (c *ExecConverter) Convert(ctx context.Context, math string, display bool) (*html.Node, error) {
	args := c.cfg.Args(math, display)
	cmd := exec.CommandContext(ctx, c.cfg.Command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running converter", "command", c.cfg.Command[0], "display", display)

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, texerrors.Wrap(texerrors.ErrCodeInternal, err, "converter command %q not found", c.cfg.Command[0])
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, texerrors.Wrap(texerrors.ErrCodeConverterFailure, err, "%s", msg)
	}

	return Wrap(stdout.String())
}

// Wrap parses rendered markup and returns it under a container element.
func Wrap(markup string) (*html.Node, error) {
	nodes, err := svg.ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	container := &html.Node{Type: html.ElementNode, Data: ContainerElement}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func (c Config) clone() Config {
	out := Config{
		Command:     append([]string(nil), c.Command...),
		InlineArgs:  append([]string(nil), c.InlineArgs...),
		DisplayArgs: append([]string(nil), c.DisplayArgs...),
		Macros:      make(map[string]Macro, len(c.Macros)),
	}
	for k, v := range c.Macros {
		out.Macros[k] = v
	}
	return out
}
