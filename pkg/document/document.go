// Package document is a self-contained design document that the chart
// pipeline can operate on.
//
// A [Document] holds pages of layers, the current selection and the notices
// shown to the user. It satisfies the host interface of package pipeline, so
// the CLI and the HTTP API can convert rectangles into charts without a
// native design tool. Documents serialize to JSON (file store) and BSON
// (MongoDB store); notices are transient and never persisted.
package document

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/suechart/pkg/layer"
)

// ErrNotFound is returned when a document or layer does not exist.
var ErrNotFound = errors.New("not found")

// Layer types used by this package. Hosts may use others.
const (
	TypeRectangle = "rectangle"
	TypeArtwork   = "artwork"
)

// Layer is a single object on a page.
type Layer struct {
	ID      string      `json:"id" bson:"id"`
	Name    string      `json:"name" bson:"name"`
	Type    string      `json:"type" bson:"type"`
	Frame   layer.Frame `json:"frame" bson:"frame"`
	Artwork *layer.Node `json:"artwork,omitempty" bson:"artwork,omitempty"`
}

// Page is an ordered list of layers.
type Page struct {
	ID     string   `json:"id" bson:"id"`
	Name   string   `json:"name" bson:"name"`
	Layers []*Layer `json:"layers" bson:"layers"`
}

// Document is a design document with a current page and selection.
//
// A Document is not safe for concurrent use.
type Document struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Pages       []*Page  `json:"pages" bson:"pages"`
	CurrentPage int      `json:"currentPage" bson:"currentPage"`
	Selected    []string `json:"selection" bson:"selection"`

	messages []string
}

// New creates a document with a single empty page.
func New(name string) *Document {
	return &Document{
		ID:    NewID(),
		Name:  name,
		Pages: []*Page{{ID: NewID(), Name: "Page 1"}},
	}
}

// NewID returns a fresh object identifier.
func NewID() string {
	return uuid.NewString()
}

// ActivePage returns the current page, creating one if the document has none.
func (d *Document) ActivePage() *Page {
	if len(d.Pages) == 0 {
		d.Pages = []*Page{{ID: NewID(), Name: "Page 1"}}
	}
	if d.CurrentPage < 0 || d.CurrentPage >= len(d.Pages) {
		d.CurrentPage = 0
	}
	return d.Pages[d.CurrentPage]
}

// Select replaces the selection with the given layer IDs.
func (d *Document) Select(ids ...string) {
	d.Selected = slices.Clone(ids)
}

// Selection returns the selected layers in selection order. IDs that no
// longer resolve are skipped.
func (d *Document) Selection() []*Layer {
	out := make([]*Layer, 0, len(d.Selected))
	for _, id := range d.Selected {
		if l, ok := d.LayerByID(id); ok {
			out = append(out, l)
		}
	}
	return out
}

// Layers returns every layer of every page.
func (d *Document) Layers() []*Layer {
	var out []*Layer
	for _, p := range d.Pages {
		out = append(out, p.Layers...)
	}
	return out
}

// LayerByID looks a layer up across all pages.
func (d *Document) LayerByID(id string) (*Layer, bool) {
	for _, p := range d.Pages {
		for _, l := range p.Layers {
			if l.ID == id {
				return l, true
			}
		}
	}
	return nil, false
}

// AddLayer appends l to the active page. An empty ID is filled in.
func (d *Document) AddLayer(l *Layer) error {
	if l.ID == "" {
		l.ID = NewID()
	}
	if _, exists := d.LayerByID(l.ID); exists {
		return fmt.Errorf("layer %s already exists", l.ID)
	}
	p := d.ActivePage()
	p.Layers = append(p.Layers, l)
	return nil
}

// RemoveLayer deletes a layer from whichever page holds it and drops it from
// the selection.
func (d *Document) RemoveLayer(id string) error {
	for _, p := range d.Pages {
		for i, l := range p.Layers {
			if l.ID == id {
				p.Layers = slices.Delete(p.Layers, i, i+1)
				d.Selected = slices.DeleteFunc(d.Selected, func(s string) bool { return s == id })
				return nil
			}
		}
	}
	return fmt.Errorf("layer %s: %w", id, ErrNotFound)
}

// ShowMessage records a transient notice for the user.
func (d *Document) ShowMessage(msg string) {
	d.messages = append(d.messages, msg)
}

// Messages returns the notices shown since the last call to DrainMessages.
func (d *Document) Messages() []string {
	return slices.Clone(d.messages)
}

// DrainMessages returns and clears the pending notices.
func (d *Document) DrainMessages() []string {
	msgs := d.messages
	d.messages = nil
	return msgs
}
