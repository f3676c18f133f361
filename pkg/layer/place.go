package layer

import (
	"strconv"
	"strings"
)

// Frame is a layer's position and size in document coordinates.
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Place returns the frame for artwork n inserted at target. Only the origin
// is taken from target; the size is the artwork's own (see [Bounds]). When
// the artwork does not declare a size, target's size is used instead.
func Place(n *Node, target Frame) Frame {
	w, h, ok := Bounds(n)
	if !ok {
		w, h = target.Width, target.Height
	}
	return Frame{X: target.X, Y: target.Y, Width: w, Height: h}
}

// Bounds returns the size declared on the root of n, from its width and
// height attributes or, failing that, its viewBox.
func Bounds(n *Node) (width, height float64, ok bool) {
	if n == nil {
		return 0, 0, false
	}
	ws, wok := n.Attr("width")
	hs, hok := n.Attr("height")
	if wok && hok {
		w, errW := parseLength(ws)
		h, errH := parseLength(hs)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return w, h, true
		}
	}

	vb, ok := n.Attr("viewBox")
	if !ok {
		return 0, 0, false
	}
	fields := strings.FieldsFunc(vb, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// parseLength accepts plain numbers and pixel lengths ("300", "300px").
func parseLength(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
}
