// Package chart describes what is sent to the chart render service.
//
// A [Config] names a chart type from the fixed [Catalog], the tabular data to
// plot, a render style and a set of signal settings, plus the size of the
// placeholder the chart replaces. Configs round-trip through JSON unchanged;
// the same encoding is stored inside the artwork layer's name (see package
// link) so a chart can be regenerated later without any side storage.
//
// # Tabular Data
//
// [ParseTable] turns text pasted from a spreadsheet (tab-separated cells,
// newline-separated rows) into the row/cell slice the render service expects:
//
//	rows, err := chart.ParseTable("a\tb\n1\t2\n3\t4")
//	// rows == [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}
package chart
