package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/style"
)

// paletteCommand shows the node style of every hierarchy level.
func (c *CLI) paletteCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the node colours of each hierarchy level",
		Long: `Show the node colours of each hierarchy level.

Levels cycle through the palette: level 8 looks like level 0 apart from the
root's larger, bolder label.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				styles := make([]style.Style, len(style.Palette))
				for i := range styles {
					styles[i] = style.ForLevel(i)
				}
				return c.printJSON(styles)
			}

			rows := make([]string, len(style.Palette))
			for level := range style.Palette {
				s := style.ForLevel(level)
				rows[level] = lipgloss.JoinHorizontal(lipgloss.Center,
					swatch(level),
					StyleDim.Render(fmt.Sprintf("  fill %s  border %s  %gpx/%d", s.Fill, s.Border, s.FontSize, s.FontWeight)),
				)
			}
			fmt.Fprintln(c.out, strings.Join(rows, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the styles as JSON")

	return cmd
}
