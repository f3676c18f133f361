package layer

import (
	"encoding/xml"
	"io"
	"strings"
)

// MarshalSVG writes the tree rooted at n back out as markup.
func MarshalSVG(n *Node) (string, error) {
	var b strings.Builder
	if err := WriteSVG(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteSVG writes the tree rooted at n as markup to w.
func WriteSVG(w io.Writer, n *Node) error {
	enc := xml.NewEncoder(w)
	if err := encodeNode(enc, n); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	if n.Element == "" {
		return enc.EncodeToken(xml.CharData(n.Text))
	}

	start := xml.StartElement{Name: xml.Name{Local: n.Element}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
