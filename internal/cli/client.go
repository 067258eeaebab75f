package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texsvg/pkg/client"
	"github.com/matzehuels/texsvg/pkg/errors"
)

// clientOpts holds the command-line flags for the client command.
type clientOpts struct {
	input  string
	output string
	scale  float64
	port   int
	host   string
}

func (c *CLI) clientCommand() *cobra.Command {
	opts := clientOpts{
		output: defaultOutput,
		scale:  1.0,
		host:   defaultHost,
	}

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Convert a TeX file using a running server",
		Example: `  texsvg client -i equation.tex -p 8080
  texsvg client -i inline.tex -o inline.svg -s 1.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClient(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "TeX input file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "SVG output file")
	cmd.Flags().Float64VarP(&opts.scale, "scale", "s", opts.scale, "scale factor applied to the image")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "server port (default $"+envPort+")")
	cmd.Flags().StringVarP(&opts.host, "host", "n", opts.host, "server host")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagFilename("input", "tex")
	_ = cmd.MarkFlagFilename("output", "svg")

	return cmd
}

func (c *CLI) runClient(ctx context.Context, opts clientOpts) error {
	if err := errors.ValidatePath(opts.input); err != nil {
		return err
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	port, err := resolvePort(opts.port)
	if err != nil {
		return err
	}
	url, err := client.ServerURL(opts.host, port)
	if err != nil {
		return err
	}

	c.Logger.Debug("sending request", "server", url, "input", opts.input, "scale", opts.scale)
	prog := newProgress(c.Logger)

	spin := newSpinner(ctx, os.Stderr, "Converting "+opts.input)
	spin.Start()
	if err := client.New(url).ConvertFile(ctx, opts.input, opts.output, opts.scale); err != nil {
		spin.StopWithError("Conversion failed")
		return err
	}
	spin.StopWithSuccess("Converted %s", opts.input)
	printFile(opts.output)

	prog.done("Converted " + opts.input)
	return nil
}
