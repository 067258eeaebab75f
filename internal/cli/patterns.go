package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texsvg/pkg/tex"
)

func (c *CLI) patternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns [tex]",
		Short: "List the accepted math shapes, or classify an expression",
		Example: `  texsvg patterns
  texsvg patterns '\[ \int_0^1 x\,dx \]'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(renderPatterns(tex.Patterns()))
				return nil
			}

			m, err := tex.Classify(args[0])
			if err != nil {
				return err
			}
			printKeyValue("pattern", m.Pattern)
			printKeyValue("content", m.Content)
			printKeyValue("display", fmt.Sprint(m.Display))
			return nil
		},
	}
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}
