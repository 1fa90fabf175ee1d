package output

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// CSVFormatter writes a header row followed by one line per record.
type CSVFormatter struct {
	writer io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes rows as CSV. No rows means no output at all, not even a
// header.
func (c *CSVFormatter) Format(rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	csvWriter := csv.NewWriter(c.writer)
	columns := Columns(rows)
	if err := csvWriter.Write(columns); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = csvValue(row[col])
		}
		if err := csvWriter.Write(record); err != nil {
			return errors.Wrap(err, "failed to write CSV record")
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return errors.Wrap(err, "failed to flush CSV writer")
	}
	return nil
}

// csvValue quotes strings that a spreadsheet would run as a formula.
func csvValue(v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return formatValue(v)
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
