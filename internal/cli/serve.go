package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texsvg/pkg/cache"
	"github.com/matzehuels/texsvg/pkg/client"
	"github.com/matzehuels/texsvg/pkg/errors"
	"github.com/matzehuels/texsvg/pkg/pipeline"
	"github.com/matzehuels/texsvg/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	host     string
	port     int
	config   string // converter TOML file
	cacheURL string // shared result cache, see cache.Open
	maxBody  int64  // request body cap in bytes, 0 = unlimited
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{host: defaultHost}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion server",
		Long: `Run an HTTP server that converts TeX math to SVG.

Every POST carries {"tex": "...", "scale": 1.0} and is answered with
{"svg": "..."} or {"error": "..."}. The port defaults to $` + envPort + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "port to listen on (default $"+envPort+")")
	cmd.Flags().StringVarP(&opts.host, "host", "n", opts.host, "address to bind")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "converter configuration file (TOML)")
	_ = cmd.MarkFlagFilename("config", "toml")
	cmd.Flags().StringVar(&opts.cacheURL, "cache", "", "result cache: file:///dir, redis://host:6379/0 or mongodb://host/db")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", 0, "maximum request body in bytes (0 = unlimited)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	port, err := resolvePort(opts.port)
	if err != nil {
		return err
	}
	if err := errors.ValidateHost(opts.host); err != nil {
		return err
	}
	if opts.maxBody < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--max-body cannot be negative")
	}

	conv, err := c.newConverter(opts.config)
	if err != nil {
		return err
	}

	store, err := cache.Open(ctx, opts.cacheURL)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	var keyer cache.Keyer
	if opts.cacheURL != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":")
	}
	runner := pipeline.NewRunner(conv, store, keyer, c.Logger)

	srv := server.New(runner, server.Config{
		Host:         opts.host,
		Port:         port,
		MaxBodyBytes: opts.maxBody,
	}, c.Logger)

	if url, err := client.ServerURL(opts.host, port); err == nil {
		printInfo("%s on %s", StyleTitle.Render(appName), StyleLink.Render(url))
	}
	printNextStep("Convert a file", fmt.Sprintf("%s client -i equation.tex -p %d", appName, port))

	return srv.ListenAndServe(ctx)
}
