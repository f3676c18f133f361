package layer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a layer tree to Graphviz DOT format. Groups are drawn as
// rounded boxes and leaves as plain boxes; text nodes are omitted.
func ToDOT(n *Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, fontsize=12];\n")
	buf.WriteString("\n")

	ids := make(map[*Node]string)
	Walk(n, func(c *Node, _ int) bool {
		if c.Element == "" {
			return false
		}
		id := fmt.Sprintf("n%d", len(ids))
		ids[c] = id
		attrs := []string{fmt.Sprintf("label=%q", c.String())}
		if c.IsGroup() {
			attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	Walk(n, func(c *Node, _ int) bool {
		from, ok := ids[c]
		if !ok {
			return false
		}
		for _, child := range c.Children {
			if to, ok := ids[child]; ok {
				fmt.Fprintf(&buf, "  %s -> %s;\n", from, to)
			}
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
