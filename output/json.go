package output

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/vegasq/qsift/query"
)

// JSONFormatter writes records as JSON. Format emits JSON Lines; FormatPage
// emits a single envelope carrying the page and the filtered total.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter returns a JSON formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer.
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per record.
func (j *JSONFormatter) Format(rows []map[string]any) error {
	encoder := json.NewEncoder(j.writer)
	for i, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return errors.Wrapf(err, "failed to encode record %d", i)
		}
	}
	return nil
}

// PageEnvelope is the JSON shape of one page of records. Items is never null.
type PageEnvelope struct {
	Items    []map[string]any `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Paged    bool             `json:"paged"`
}

// NewPageEnvelope flattens a collected page into its JSON shape.
func NewPageEnvelope(result query.PageResult[map[string]any]) PageEnvelope {
	items := result.Items
	if items == nil {
		items = []map[string]any{}
	}
	return PageEnvelope{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page.Number,
		PageSize: result.Page.Size,
		Paged:    result.Page.Enabled,
	}
}

// FormatPage writes result as one PageEnvelope object.
func (j *JSONFormatter) FormatPage(result query.PageResult[map[string]any]) error {
	env := NewPageEnvelope(result)
	if err := json.NewEncoder(j.writer).Encode(env); err != nil {
		return errors.Wrapf(err, "failed to encode page %d of %d records", env.Page, env.Total)
	}
	return nil
}
