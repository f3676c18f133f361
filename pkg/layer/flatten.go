package layer

import (
	"strconv"
	"strings"
)

// Flatten collapses redundant grouping in the tree rooted at n.
//
// The second result is false when the whole tree flattened away, which
// happens when n is a group containing nothing but (nested) empty groups.
// The input tree is not modified.
func Flatten(n *Node) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if !n.IsGroup() {
		return n.Clone(), true
	}

	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if fc, ok := Flatten(c); ok {
			children = append(children, fc)
		}
	}
	if len(children) == 0 {
		return nil, false
	}

	out := &Node{Kind: KindGroup, Element: n.Element, Attrs: cloneAttrs(n.Attrs), Children: children}
	if len(children) == 1 && children[0].IsGroup() && !pinsTransform(out, children[0]) {
		// children[0] is already flat, so the merged group is too.
		return collapse(out, children[0]), true
	}
	return out, true
}

// pinsTransform reports whether child must stay a separate group under
// wrapper. Renderers ignore transform on <svg>, so a transformed group
// directly below the root keeps its own element.
func pinsTransform(wrapper, child *Node) bool {
	if wrapper.Element != "svg" {
		return false
	}
	_, ok := child.Attr("transform")
	return ok
}

// collapse merges a wrapper group with its only child group. The child keeps
// its content and element; the wrapper contributes its attributes so the
// artwork renders the same. The outermost <svg> keeps its element because it
// defines the viewport.
func collapse(wrapper, child *Node) *Node {
	out := &Node{
		Kind:     KindGroup,
		Element:  child.Element,
		Attrs:    cloneAttrs(wrapper.Attrs),
		Children: child.Children,
	}
	if wrapper.Element == "svg" {
		out.Element = wrapper.Element
	}

	for _, a := range child.Attrs {
		outer, ok := out.Attr(a.Name)
		switch {
		case !ok:
			out.Attrs = append(out.Attrs, a)
		case a.Name == "transform":
			out.SetAttr("transform", strings.TrimSpace(outer+" "+a.Value))
		case a.Name == "opacity":
			out.SetAttr("opacity", multiplyOpacity(outer, a.Value))
		default:
			out.SetAttr(a.Name, a.Value)
		}
	}
	return out
}

func multiplyOpacity(a, b string) string {
	x, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	y, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA != nil || errB != nil {
		return b
	}
	return strconv.FormatFloat(x*y, 'f', -1, 64)
}

func cloneAttrs(attrs []Attr) []Attr {
	if attrs == nil {
		return nil
	}
	return append([]Attr(nil), attrs...)
}
