package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format names an output format.
type Format string

const (
	FormatJSON  Format = "jsonl"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// Formats lists the supported formats in the order help text shows them.
var Formats = []Format{FormatJSON, FormatCSV, FormatTable}

// ErrUnknownFormat is returned by New for a format it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter writes records in one output format.
type Formatter interface {
	// Format writes rows in the formatter's format
	Format(rows []map[string]any) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter for format, writing to w. "json" is accepted as
// an alias of jsonl.
func New(format Format, w io.Writer) (Formatter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON, "json":
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	default:
		return nil, errors.WithHintf(errors.Wrapf(ErrUnknownFormat, "%q", format),
			"supported formats: %s", strings.Join(formatNames(), ", "))
	}
}

func formatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// Columns returns the sorted union of the keys of rows.
func Columns(rows []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for col := range row {
			seen[col] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for col := range seen {
		columns = append(columns, col)
	}
	slices.Sort(columns)
	return columns
}

// formatValue renders one cell for text output. Missing and nil values are
// empty.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
