package layer

import (
	"slices"
	"strconv"
	"strings"
)

// Kind distinguishes groups from leaves.
type Kind string

const (
	KindGroup Kind = "group"
	KindLeaf  Kind = "leaf"
)

// Attr is a single markup attribute. Order is preserved so exported markup
// stays stable.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one layer of imported artwork.
//
// Leaves may still carry Children (for example a <defs> or <text> element
// with nested content). That content is opaque: Flatten only restructures
// groups. A leaf with an empty Element is a text node holding Text.
type Node struct {
	Kind     Kind    `json:"kind"`
	Element  string  `json:"element,omitempty"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Group returns a group node with the given children.
func Group(element string, children ...*Node) *Node {
	return &Node{Kind: KindGroup, Element: element, Children: children}
}

// Leaf returns a leaf node for element.
func Leaf(element string, attrs ...Attr) *Node {
	return &Node{Kind: KindLeaf, Element: element, Attrs: attrs}
}

// IsGroup reports whether n is a group.
func (n *Node) IsGroup() bool { return n != nil && n.Kind == KindGroup }

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, appending it if absent.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:    n.Kind,
		Element: n.Element,
		Attrs:   slices.Clone(n.Attrs),
		Text:    n.Text,
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk calls fn for n and every descendant in depth-first order. The depth of
// n is 0. Returning false from fn skips the node's children.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// GroupDepth returns the maximum number of nested groups below n, not counting
// n itself. A group containing only leaves has depth 0.
func GroupDepth(n *Node) int {
	best := 0
	for _, c := range n.Children {
		if c.IsGroup() {
			best = max(best, 1+GroupDepth(c))
		}
	}
	return best
}

// Equal reports whether a and b describe the same tree.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Element != b.Element || a.Text != b.Text {
		return false
	}
	if !slices.Equal(a.Attrs, b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// String returns a compact one-line description, e.g. "g#axis(3)".
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	if n.Element == "" {
		b.WriteString("#text")
	} else {
		b.WriteString(n.Element)
	}
	if id, ok := n.Attr("id"); ok {
		b.WriteString("#" + id)
	}
	if n.IsGroup() {
		b.WriteString("(")
		b.WriteString(strconv.Itoa(len(n.Children)))
		b.WriteString(")")
	}
	return b.String()
}
