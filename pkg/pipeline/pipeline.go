// Package pipeline synchronizes placeholder layers with rendered charts.
//
// This package implements the convert/refresh operation that CLI, API and
// plug-in hosts share: inspect the selection, work out the chart
// configuration, fetch the artwork and merge it back into the document.
//
// # Stages
//
// A run is split at its single suspension point, the network call:
//
//  1. Prepare: classify the selection, prompt for or decode the chart
//     configuration, refresh the size from the placeholder frame
//  2. Fetch: ask the render service for SVG
//  3. Apply: import, flatten and place the artwork, insert it, re-link the
//     pair, then remove the previous artwork
//
// Prepare and Apply touch the document; Fetch does not. A failed Fetch
// therefore leaves an existing pair exactly as it was.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, prompter, logger)
//	res := runner.Sync(ctx, doc)
//	if res.Err != nil {
//	    // doc already shows the message
//	}
//
// Hosts with their own event loop can use [Runner.Start] and wait on the
// returned [Task].
package pipeline

import (
	"context"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/document"
)

// Notices shown to the user.
const (
	MsgSelectRectangle = "Select a Rectangle to convert it to a Sue Chart."
	MsgChooseType      = "What chart would you like to generate?"
	MsgEnterData       = "What's your data? Paste in TSV data from Excel or co, please."
	MsgBye             = "Bye! Next time!"
	MsgInserted        = "🎉 SVG inserted!"
	MsgUnlinked        = "Chart link removed."
)

// Host is the document a run operates on.
// *document.Document implements it.
type Host interface {
	// Selection returns the selected layers in selection order.
	Selection() []*document.Layer
	// Layers returns every layer of the document.
	Layers() []*document.Layer
	LayerByID(id string) (*document.Layer, bool)
	// AddLayer inserts l on the active page.
	AddLayer(l *document.Layer) error
	RemoveLayer(id string) error
	// ShowMessage displays a transient notice.
	ShowMessage(msg string)
}

// Prompter asks the user for a new chart's type and data.
// A false ok means the user dismissed the prompt.
type Prompter interface {
	SelectChartType(ctx context.Context, prompt string, catalog []chart.Type) (t chart.Type, ok bool, err error)
	EnterData(ctx context.Context, prompt, example string) (text string, ok bool, err error)
}

// Renderer turns a chart configuration into SVG markup.
// *render.Client implements it.
type Renderer interface {
	FetchChart(ctx context.Context, cfg chart.Config) (string, error)
}

// State classifies the selection a run starts from.
type State int

const (
	NoSelection        State = iota // nothing selected
	SingleUnlinked                  // one plain layer; a new chart is created
	SingleLinkedMaster              // one placeholder with a chart
	SingleLinkedSlave               // one chart artwork layer
	MultiSelection                  // more than one layer
)

var stateNames = [...]string{
	NoSelection:        "no-selection",
	SingleUnlinked:     "single-unlinked",
	SingleLinkedMaster: "single-linked-master",
	SingleLinkedSlave:  "single-linked-slave",
	MultiSelection:     "multi-selection",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler so states serialize by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
