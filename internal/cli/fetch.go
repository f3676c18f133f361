package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/layer"
)

// fetchOpts holds options for the fetch command.
type fetchOpts struct {
	chartType string
	dataFile  string
	style     string
	width     float64
	height    float64
	output    string
	flatten   bool
	noCache   bool
}

// fetchCommand creates the fetch command for rendering a chart without a
// document.
func (c *CLI) fetchCommand() *cobra.Command {
	opts := fetchOpts{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Render a chart to SVG without a document",
		Long: `Send one chart request to the render service and write the returned SVG.

Without --data-file the example table is rendered. With --flatten the SVG is
normalized the same way it is when inserted into a document.`,
		Example: `  suechart fetch --type line -o line.svg
  suechart fetch --type treemap --data-file data.tsv --width 800 --height 500
  pbpaste | suechart fetch --type area --data-file - --flatten`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.chartType, "type", "t", "", "chart type (required, see: suechart types)")
	cmd.Flags().StringVar(&opts.dataFile, "data-file", "", "TSV data, - for stdin (default: example table)")
	cmd.Flags().StringVar(&opts.style, "style", chart.DefaultStyle, "render style")
	cmd.Flags().Float64Var(&opts.width, "width", 600, "chart width")
	cmd.Flags().Float64Var(&opts.height, "height", 400, "chart height")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.flatten, "flatten", false, "normalize the SVG before writing")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.RegisterFlagCompletionFunc("type", completeChartTypes)

	return cmd
}

func (c *CLI) runFetch(cmd *cobra.Command, opts fetchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	t, err := chart.ParseType(opts.chartType)
	if err != nil {
		return err
	}

	text, err := c.readData(opts.dataFile)
	if err != nil {
		return err
	}
	if text == "" {
		text = chart.ExampleTable
	}
	rows, err := chart.ParseTable(text)
	if err != nil {
		return err
	}

	cfg := chart.New(t, rows).WithSize(opts.width, opts.height)
	cfg.Style = opts.style

	client, store, err := c.newClient(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Debug("fetching chart", "endpoint", client.Endpoint(cfg))
	prog := newProgress(logger)

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s chart...", t))
	spinner.Start()
	svg, err := client.FetchChart(ctx, cfg)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Chart rendered", "type", t, "bytes", len(svg))

	if opts.flatten {
		root, err := layer.ImportSVG(svg)
		if err != nil {
			return err
		}
		if flat, ok := layer.Flatten(root); ok {
			root = flat
		}
		if svg, err = layer.MarshalSVG(root); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess("Rendered %s chart", StyleHighlight.Render(t.String()))
	printFile(opts.output)
	return nil
}
