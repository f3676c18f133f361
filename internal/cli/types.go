package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/chart"
)

// typesCommand creates the types command listing the chart catalog.
func (c *CLI) typesCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the available chart types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if plain {
				for _, t := range chart.Catalog() {
					fmt.Fprintln(out, t)
				}
				return nil
			}
			fmt.Fprintln(out, typesTable(chart.Catalog()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print one type per line without styling")

	return cmd
}

// typesTable renders the catalog as a numbered table.
func typesTable(types []chart.Type) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "TYPE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case col == 0:
				return StyleNumber.Padding(0, 1)
			default:
				return StyleValue.Padding(0, 1)
			}
		})
	for i, ct := range types {
		t.Row(strconv.Itoa(i+1), ct.String())
	}
	return t.Render()
}
