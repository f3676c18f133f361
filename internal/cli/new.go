package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/layer"
)

// newOpts holds options for the new command.
type newOpts struct {
	name   string
	width  float64
	height float64
	store  bool
}

// newCommand creates the new command for creating a document with a single
// placeholder rectangle.
func (c *CLI) newCommand() *cobra.Command {
	opts := newOpts{}

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a document with one placeholder rectangle",
		Long: `Create a document containing a single selected rectangle, ready to be
converted with "suechart convert".

Without --store the document is written to the given JSON file. With --store
it is saved to the configured document store and its ID is printed.`,
		Example: `  suechart new chart.json --width 600 --height 400
  suechart new --store --name "Q3 report"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.store && len(args) == 0 {
				return fmt.Errorf("a file path is required without --store")
			}
			return c.runNew(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "Chart", "name of the placeholder rectangle")
	cmd.Flags().Float64Var(&opts.width, "width", 600, "placeholder width")
	cmd.Flags().Float64Var(&opts.height, "height", 400, "placeholder height")
	cmd.Flags().BoolVar(&opts.store, "store", false, "save to the configured document store")

	return cmd
}

func (c *CLI) runNew(cmd *cobra.Command, args []string, opts newOpts) error {
	ctx := cmd.Context()
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}

	doc := document.New(opts.name)
	rect := &document.Layer{
		ID:    document.NewID(),
		Name:  opts.name,
		Type:  document.TypeRectangle,
		Frame: layer.Frame{Width: opts.width, Height: opts.height},
	}
	if err := doc.AddLayer(rect); err != nil {
		return err
	}
	doc.Select(rect.ID)

	if opts.store {
		store, err := c.newStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Put(ctx, doc); err != nil {
			return err
		}
		printSuccess("Created document %s", StyleHighlight.Render(doc.ID))
		printNextStep("Convert it", "suechart convert --store "+doc.ID)
		return nil
	}

	if err := document.WriteFile(args[0], doc); err != nil {
		return err
	}
	printSuccess("Created document")
	printFile(args[0])
	printNextStep("Convert it", "suechart convert "+args[0])
	return nil
}
