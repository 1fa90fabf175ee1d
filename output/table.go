package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders records as an aligned text table for terminals.
type TableFormatter struct {
	writer io.Writer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows under a header of their columns. Headers keep the
// column names as written.
func (t *TableFormatter) Format(rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	columns := Columns(rows)

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatValue(row[col])
		}
		table.Append(cells)
	}

	table.Render()
	return nil
}
