package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/pipeline"
)

// unlinkOpts holds options for the unlink command.
type unlinkOpts struct {
	store     bool
	selection []string
}

// unlinkCommand creates the unlink command.
func (c *CLI) unlinkCommand() *cobra.Command {
	opts := unlinkOpts{}

	cmd := &cobra.Command{
		Use:   "unlink <document>",
		Short: "Remove the chart link from the selected layer",
		Long: `Remove the chart link from the selected placeholder or artwork.

The artwork is deleted and the placeholder keeps its display name, so the next
convert starts over. Use this to recover from a broken link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			h, err := c.openDocument(ctx, args[0], opts.store)
			if err != nil {
				return err
			}
			defer h.close()

			if err := applySelection(h.doc, opts.selection); err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
			if err := runner.Unlink(h.doc); err != nil {
				return err
			}
			if err := h.save(ctx); err != nil {
				return err
			}
			printSuccess(pipeline.MsgUnlinked)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.store, "store", false, "treat the argument as a document ID in the configured store")
	cmd.Flags().StringSliceVar(&opts.selection, "select", nil, "layer IDs to select (default: the stored selection)")

	return cmd
}
