package discovery

import (
	"strings"

	"github.com/poddiag/poddiag/pkg/errors"
	"github.com/poddiag/poddiag/pkg/plan"
)

// TableRows splits tabular command output into data rows: the first line is
// the column header and is dropped, as are blank lines.
func TableRows(output string) []string {
	lines := strings.Split(output, "\n")
	if len(lines) <= 1 {
		return nil
	}
	rows := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}

// FirstField returns the first whitespace-delimited field of a row, or an
// error for a blank row.
func FirstField(row string) (string, error) {
	fields := strings.Fields(row)
	if len(fields) == 0 {
		return "", errors.New(errors.ErrCodeParseAnomaly, "blank row")
	}
	return fields[0], nil
}

// ParseImageRow parses one row of "podman images --no-trunc" output into an
// Image. Rows need at least repository, tag, and id columns; anything
// shorter is a parse anomaly and the row is reported as such rather than
// silently mis-read.
func ParseImageRow(row string) (plan.Image, error) {
	fields := strings.Fields(row)
	if len(fields) < 3 {
		return plan.Image{}, errors.NewWithContext(errors.ErrCodeParseAnomaly,
			"image row has fewer than 3 columns",
			map[string]any{"row": row, "columns": len(fields)})
	}
	return plan.Image{
		RepoTag: fields[0] + ":" + fields[1],
		ID:      fields[2],
	}, nil
}
