package chart

import (
	"strings"

	"github.com/matzehuels/suechart/pkg/errors"
)

// ExampleTable is shown in the data prompt as a starting point.
const ExampleTable = "Monate\tWerte 2012\tWerte 2014\n1\t43\t91\n2\t81\t53\n3\t19\t87\n4\t52\t48"

// ParseTable parses tab-separated text into rows of cells.
//
// Rows are separated by "\n" (a trailing "\r" from Windows clipboards is
// dropped) and cells by "\t". Trailing empty lines are ignored because
// spreadsheets append one when copying. Cell text is kept verbatim.
//
// ParseTable returns a PARSE_ERROR when no rows remain or when a row has a
// different number of cells than the header row.
func ParseTable(text string) ([][]string, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeParse, "no data to plot")
	}

	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, "\t")
		if len(rows[i]) != len(rows[0]) {
			return nil, errors.New(errors.ErrCodeParse,
				"row %d has %d cells, expected %d", i+1, len(rows[i]), len(rows[0]))
		}
	}
	return rows, nil
}

// FormatTable is the inverse of ParseTable.
func FormatTable(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}
