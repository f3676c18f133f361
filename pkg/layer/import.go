package layer

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/matzehuels/suechart/pkg/errors"
)

// groupElements are the SVG container elements imported as groups.
var groupElements = map[string]bool{
	"svg":    true,
	"g":      true,
	"a":      true,
	"switch": true,
}

var namespacePrefixes = map[string]string{
	"http://www.w3.org/1999/xlink":         "xlink",
	"http://www.w3.org/XML/1998/namespace": "xml",
	"http://www.w3.org/2000/xmlns/":        "xmlns",
	"xmlns":                                "xmlns",
}

// ImportSVG parses SVG markup into a layer tree rooted at the <svg> element.
//
// Container elements (svg, g, a, switch) become groups and everything else
// becomes a leaf. Comments, processing instructions and whitespace-only text
// are dropped. Malformed markup or a document whose root is not <svg> yields
// a PARSE_ERROR.
func ImportSVG(markup string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = true

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid SVG markup")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := elementNode(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New(errors.ErrCodeParse, "SVG markup has more than one root element")
				}
				if n.Element != "svg" {
					return nil, errors.New(errors.ErrCodeParse, "SVG markup root is <%s>, expected <svg>", n.Element)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 || strings.TrimSpace(string(t)) == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Kind: KindLeaf, Text: string(t)})
		}
	}

	if root == nil {
		return nil, errors.New(errors.ErrCodeParse, "SVG markup is empty")
	}
	return root, nil
}

func elementNode(t xml.StartElement) *Node {
	n := &Node{Kind: KindLeaf, Element: t.Name.Local}
	if groupElements[t.Name.Local] {
		n.Kind = KindGroup
	}
	for _, a := range t.Attr {
		n.Attrs = append(n.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
	}
	return n
}

func attrName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := namespacePrefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	return name.Local
}
