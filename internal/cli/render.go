package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texsvg/pkg/client"
	"github.com/matzehuels/texsvg/pkg/errors"
	"github.com/matzehuels/texsvg/pkg/pipeline"
	"github.com/matzehuels/texsvg/pkg/protocol"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input   string
	output  string
	scale   float64
	config  string // converter TOML file
	noCache bool   // skip the local result cache
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		output: defaultOutput,
		scale:  1.0,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Convert a TeX file locally, without a server",
		Long: `Convert a TeX file by running the converter in this process.

Results are cached in ~/.cache/texsvg (or $XDG_CACHE_HOME/texsvg) unless
--no-cache is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "TeX input file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "SVG output file")
	cmd.Flags().Float64VarP(&opts.scale, "scale", "s", opts.scale, "scale factor applied to the image")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "converter configuration file (TOML)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagFilename("input", "tex")
	_ = cmd.MarkFlagFilename("output", "svg")
	_ = cmd.MarkFlagFilename("config", "toml")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	if err := errors.ValidatePath(opts.input); err != nil {
		return err
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := errors.ValidateScale(opts.scale); err != nil {
		return err
	}

	src, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	conv, err := c.newConverter(opts.config)
	if err != nil {
		return err
	}
	store, err := newFileCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	runner := pipeline.NewRunner(conv, store, nil, c.Logger)

	spin := newSpinner(ctx, os.Stderr, "Rendering "+opts.input)
	spin.Start()
	res, err := runner.Execute(ctx, protocol.NewRequest(string(src), opts.scale))
	if err != nil {
		spin.StopWithError("Rendering failed")
		return err
	}
	if err := os.WriteFile(opts.output, []byte(res.SVG), client.OutputPerm); err != nil {
		spin.StopWithError("Writing output failed")
		return fmt.Errorf("write output: %w", err)
	}
	spin.StopWithSuccess("Rendered %s", opts.input)
	printFile(opts.output)
	fmt.Println(formatConversion(res.Match.Pattern, res.Scale, res.CacheHit))

	c.Logger.Debug("render stats",
		"render", res.Stats.RenderTime,
		"rescale", res.Stats.RescaleTime,
		"total", res.Stats.Total)
	return nil
}
