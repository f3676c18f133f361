package layer

import (
	"context"
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	root := Group("svg", Group("g", Leaf("rect")), &Node{Kind: KindLeaf, Text: "hello"})

	dot := ToDOT(root)

	if !strings.Contains(dot, "digraph layers") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `label="svg(2)"`) {
		t.Error("ToDOT() output missing root label")
	}
	if !strings.Contains(dot, "n0 -> n1") || !strings.Contains(dot, "n1 -> n2") {
		t.Errorf("ToDOT() output missing edges:\n%s", dot)
	}
	if strings.Contains(dot, "hello") {
		t.Error("ToDOT() should omit text nodes")
	}
	if strings.Count(dot, "fillcolor=lightgrey") != 2 {
		t.Error("ToDOT() should style both groups")
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(context.Background(), ToDOT(Group("g", Leaf("rect"))))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	svg := string(out)
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("RenderSVG() output is not SVG:\n%s", svg)
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("RenderSVG() output is truncated")
	}
}
