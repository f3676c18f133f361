package chart

import (
	"slices"

	"github.com/matzehuels/suechart/pkg/errors"
)

// Type is a chart kind understood by the render service.
// It becomes the last path segment of the render URL.
type Type string

// Supported chart types.
const (
	TypeArc                  Type = "arc"
	TypeArcSpider            Type = "arc-spider"
	TypeLollipop             Type = "lollipop"
	TypeLollipopHorizontal   Type = "lollipop-horizontal"
	TypeLine                 Type = "line"
	TypeDotplot              Type = "dotplot"
	TypeSlope                Type = "slope"
	TypeFlowArrows           Type = "flow-arrows"
	TypeStackedBar           Type = "stackedBar"
	TypeStackedBarLabelOnTop Type = "stackedBar-labelOnTop"
	TypeStackedBarColumn     Type = "stackedBar-column"
	TypeGroupedBar           Type = "groupedBar"
	TypeGroupedBarLabelOnTop Type = "groupedBar-labelOnTop"
	TypeGroupedBarColumn     Type = "groupedBar-column"
	TypeStackedBarMekko      Type = "stackedBar-mekko"
	TypeWaffleplot           Type = "waffleplot"
	TypeTreemap              Type = "treemap"
	TypeArea                 Type = "area"
	TypeAreaLine             Type = "area-line"
	TypeScatterplot          Type = "scatterplot"
	TypeTimeline             Type = "timeline"
)

// catalog is ordered; selector prompts index into it.
var catalog = []Type{
	TypeArc,
	TypeArcSpider,
	TypeLollipop,
	TypeLollipopHorizontal,
	TypeLine,
	TypeDotplot,
	TypeSlope,
	TypeFlowArrows,
	TypeStackedBar,
	TypeStackedBarLabelOnTop,
	TypeStackedBarColumn,
	TypeGroupedBar,
	TypeGroupedBarLabelOnTop,
	TypeGroupedBarColumn,
	TypeStackedBarMekko,
	TypeWaffleplot,
	TypeTreemap,
	TypeArea,
	TypeAreaLine,
	TypeScatterplot,
	TypeTimeline,
}

// Catalog returns the supported chart types in selector order.
// The returned slice is a copy and may be modified by the caller.
func Catalog() []Type {
	return slices.Clone(catalog)
}

// TypeAt returns the chart type at position i of the catalog.
func TypeAt(i int) (Type, bool) {
	if i < 0 || i >= len(catalog) {
		return "", false
	}
	return catalog[i], true
}

// ParseType converts s into a known chart type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", errors.New(errors.ErrCodeInvalidType, "unknown chart type %q", s)
	}
	return t, nil
}

// Valid reports whether t is part of the catalog.
func (t Type) Valid() bool {
	return slices.Contains(catalog, t)
}

func (t Type) String() string { return string(t) }
