package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/layer"
	"github.com/matzehuels/suechart/pkg/link"
)

// layersOpts holds options for the layers command.
type layersOpts struct {
	store   bool
	artwork string
	format  string
	output  string
}

// layersCommand creates the layers command for inspecting a document.
func (c *CLI) layersCommand() *cobra.Command {
	opts := layersOpts{}

	cmd := &cobra.Command{
		Use:   "layers <document>",
		Short: "Inspect the layers of a document",
		Long: `List the layers of a document with their chart link role.

With --artwork, print the layer tree of one imported chart instead. The tree
can be written as text, Graphviz DOT or an SVG diagram rendered by Graphviz.`,
		Example: `  suechart layers chart.json
  suechart layers chart.json --artwork 3f1c... --format svg -o tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayers(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.store, "store", false, "treat the argument as a document ID in the configured store")
	cmd.Flags().StringVar(&opts.artwork, "artwork", "", "artwork layer ID to print the tree of")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "tree format: text, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runLayers(cmd *cobra.Command, arg string, opts layersOpts) error {
	ctx := cmd.Context()

	h, err := c.openDocument(ctx, arg, opts.store)
	if err != nil {
		return err
	}
	defer h.close()

	if opts.artwork == "" {
		fmt.Fprintln(cmd.OutOrStdout(), layersTable(h.doc))
		return nil
	}

	l, ok := h.doc.LayerByID(opts.artwork)
	if !ok {
		return fmt.Errorf("layer %s: %w", opts.artwork, document.ErrNotFound)
	}
	if l.Artwork == nil {
		return fmt.Errorf("layer %s has no artwork", opts.artwork)
	}

	var out []byte
	switch opts.format {
	case "text":
		out = []byte(artworkTree(l.Artwork).String() + "\n")
	case "dot":
		out = []byte(layer.ToDOT(l.Artwork))
	case "svg":
		out, err = layer.RenderSVG(ctx, layer.ToDOT(l.Artwork))
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want text, dot or svg)", opts.format)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess("Wrote layer tree")
	printStats(layer.Count(l.Artwork), layer.GroupDepth(l.Artwork))
	printFile(opts.output)
	return nil
}

// layersTable renders every layer with its decoded link.
func layersTable(doc *document.Document) string {
	selected := make(map[string]bool, len(doc.Selected))
	for _, id := range doc.Selected {
		selected[id] = true
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("", "ID", "NAME", "ROLE", "FRAME").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	for _, l := range doc.Layers() {
		mark := ""
		if selected[l.ID] {
			mark = "▸"
		}
		dec := link.Decode(l.Name)
		t.Row(mark, l.ID, dec.DisplayName, dec.Role.String(), formatFrame(l.Frame))
	}
	return t.Render()
}

// artworkTree converts a layer tree for terminal display.
func artworkTree(n *layer.Node) *tree.Tree {
	t := tree.Root(n.String()).
		EnumeratorStyle(StyleDim).
		RootStyle(StyleHighlight)
	for _, child := range n.Children {
		if child.Element == "" {
			continue
		}
		if child.IsGroup() {
			t.Child(artworkTree(child))
		} else {
			t.Child(child.String())
		}
	}
	return t
}

func formatFrame(f layer.Frame) string {
	return fmt.Sprintf("%g,%g %s", f.X, f.Y, formatSize(f.Width, f.Height))
}

func formatSize(w, h float64) string {
	return fmt.Sprintf("%g×%g", w, h)
}
