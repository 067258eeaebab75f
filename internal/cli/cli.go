// Package cli implements the texsvg command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texsvg/pkg/buildinfo"
	"github.com/matzehuels/texsvg/pkg/cache"
	"github.com/matzehuels/texsvg/pkg/converter"
	"github.com/matzehuels/texsvg/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "texsvg"

	// envPort names the environment variable holding the default server port.
	envPort = "TEXSVG_PORT"

	// defaultHost is the address the client connects to and the server binds.
	defaultHost = "127.0.0.1"

	// defaultOutput is where the client and render commands write the image.
	defaultOutput = "./output.svg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "texsvg renders TeX math to SVG over HTTP",
		Long:         `texsvg converts standalone TeX math expressions into SVG images scaled in ex units. Run a conversion server, send it files with the client, or render locally.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.clientCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.patternsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newConverter loads the converter configuration at path (built-in defaults
// when empty) and builds an external-command converter from it.
func (c *CLI) newConverter(path string) (*converter.ExecConverter, error) {
	cfg, err := converter.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	conv, err := converter.NewExec(cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	if err := conv.Available(); err != nil {
		c.Logger.Warn("converter not found on PATH; conversions will fail", "err", err)
	}
	return conv, nil
}

// newFileCache opens the local conversion cache. The cache is disabled when
// noCache is set or no cache directory can be determined.
func newFileCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths & Environment
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/texsvg/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// portFromEnv returns the port in TEXSVG_PORT, or 0 when unset.
func portFromEnv() (int, error) {
	raw := os.Getenv(envPort)
	if raw == "" {
		return 0, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidPort, "%s must be a number, got %q", envPort, raw)
	}
	if err := errors.ValidatePort(port); err != nil {
		return 0, err
	}
	return port, nil
}

// resolvePort picks the flag value when given, then the environment.
func resolvePort(flag int) (int, error) {
	if flag != 0 {
		return flag, errors.ValidatePort(flag)
	}
	port, err := portFromEnv()
	if err != nil {
		return 0, err
	}
	if port == 0 {
		return 0, fmt.Errorf("no port given: use --port or set %s", envPort)
	}
	return port, nil
}
