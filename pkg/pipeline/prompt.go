package pipeline

import (
	"context"

	"github.com/matzehuels/suechart/pkg/chart"
)

// StaticPrompter answers prompts with fixed values, for hosts that collect
// the chart type and data up front (API requests, CLI flags). An empty field
// answers its prompt as dismissed.
type StaticPrompter struct {
	ChartType chart.Type
	Data      string
}

// SelectChartType returns p.ChartType.
func (p StaticPrompter) SelectChartType(context.Context, string, []chart.Type) (chart.Type, bool, error) {
	return p.ChartType, p.ChartType != "", nil
}

// EnterData returns p.Data.
func (p StaticPrompter) EnterData(context.Context, string, string) (string, bool, error) {
	return p.Data, p.Data != "", nil
}

var _ Prompter = StaticPrompter{}
