package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/pipeline"
)

// convertOpts holds options for the convert command.
type convertOpts struct {
	store     bool
	selection []string
	chartType string
	dataFile  string
	noCache   bool
}

// convertCommand creates the convert command for turning a placeholder into
// a chart or refreshing an existing one.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{}

	cmd := &cobra.Command{
		Use:     "convert <document>",
		Aliases: []string{"sync"},
		Short:   "Convert the selected rectangle into a chart, or refresh it",
		Long: `Convert the selected layer of a document into a Sue chart.

An unlinked rectangle is converted after asking for the chart type and the
data (or taking them from --type and --data-file). A rectangle or artwork that
is already linked is refreshed with its stored configuration at the
rectangle's current size.

The document is a JSON file, or a document ID with --store.`,
		Example: `  # Interactive
  suechart convert chart.json

  # Non-interactive
  suechart convert chart.json --type line --data-file data.tsv

  # Refresh a linked chart after resizing its placeholder
  suechart convert chart.json --select 3f1c...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.store, "store", false, "treat the argument as a document ID in the configured store")
	cmd.Flags().StringSliceVar(&opts.selection, "select", nil, "layer IDs to select (default: the stored selection)")
	cmd.Flags().StringVarP(&opts.chartType, "type", "t", "", "chart type for a new chart (see: suechart types)")
	cmd.Flags().StringVar(&opts.dataFile, "data-file", "", "TSV data for a new chart, - for stdin")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	_ = cmd.RegisterFlagCompletionFunc("type", completeChartTypes)

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, arg string, opts convertOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := c.readData(opts.dataFile)
	if err != nil {
		return err
	}

	h, err := c.openDocument(ctx, arg, opts.store)
	if err != nil {
		return err
	}
	defer h.close()

	if err := applySelection(h.doc, opts.selection); err != nil {
		return err
	}

	prompter := flagPrompter{
		flags:    pipeline.StaticPrompter{ChartType: chart.Type(opts.chartType), Data: data},
		typeSet:  cmd.Flags().Changed("type"),
		dataSet:  opts.dataFile != "",
		fallback: terminalPrompter{in: c.in, out: c.out},
	}
	runner, cleanup, err := c.newRunner(ctx, opts.noCache, prompter)
	if err != nil {
		return err
	}
	defer cleanup()

	res := runner.Sync(ctx, h.doc)
	h.doc.DrainMessages()
	if res.Err != nil {
		return res.Err
	}

	if err := h.save(ctx); err != nil {
		return err
	}
	prog.done("Chart synced", "state", res.State, "artwork", res.Slave.ID)

	printSuccess(pipeline.MsgInserted)
	printKeyValue("Artwork", res.Slave.ID)
	printKeyValue("Size", formatSize(res.Slave.Frame.Width, res.Slave.Frame.Height))
	return nil
}
