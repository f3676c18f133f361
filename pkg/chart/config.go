package chart

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/matzehuels/suechart/pkg/errors"
)

// DefaultStyle is the render profile used for newly created charts.
const DefaultStyle = "online"

// Signal settings keys understood by the render service.
const (
	SignalAutomatedHeight = "sue___automatedHeight"
	SignalHeightPerStep   = "sue___heightPerStep"
)

// Config describes one chart request.
//
// The JSON form is what gets stored inside the artwork layer's name, so field
// names are part of the document format and must not change.
type Config struct {
	ChartType      Type           `json:"chartType"`
	Data           [][]string     `json:"data"`
	Style          string         `json:"style"`
	SignalSettings map[string]any `json:"signalSettings"`
	Width          float64        `json:"width"`
	Height         float64        `json:"height"`
}

// DefaultSignalSettings returns the signal settings applied to new charts.
// Numbers are float64 so they compare equal after a JSON round-trip.
func DefaultSignalSettings() map[string]any {
	return map[string]any{
		SignalAutomatedHeight: false,
		SignalHeightPerStep:   150.0,
	}
}

// New builds a config for a freshly converted placeholder using the default
// style and signal settings. Width and height are left zero; they are set from
// the placeholder frame right before fetching.
func New(t Type, data [][]string) Config {
	return Config{
		ChartType:      t,
		Data:           data,
		Style:          DefaultStyle,
		SignalSettings: DefaultSignalSettings(),
	}
}

// WithSize returns a copy of c sized to width x height.
func (c Config) WithSize(width, height float64) Config {
	c.Width = width
	c.Height = height
	return c
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	if c.Data != nil {
		out.Data = make([][]string, len(c.Data))
		for i, row := range c.Data {
			out.Data[i] = slices.Clone(row)
		}
	}
	out.SignalSettings = maps.Clone(c.SignalSettings)
	return out
}

// Validate checks that c can be sent to the render service.
func (c Config) Validate() error {
	if !c.ChartType.Valid() {
		return errors.New(errors.ErrCodeInvalidType, "unknown chart type %q", c.ChartType)
	}
	if err := errors.ValidateStyle(c.Style); err != nil {
		return err
	}
	if len(c.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart data is empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart size must be positive, got %gx%g", c.Width, c.Height)
	}
	return nil
}

// Marshal encodes c as compact JSON.
func (c Config) Marshal() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal decodes a JSON config.
func Unmarshal(raw string) (Config, error) {
	var c Config
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
