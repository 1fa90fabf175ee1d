// Package output writes query results as JSON Lines, CSV or a text table.
//
// All formatters take records as []map[string]any. CSV and table output use
// the sorted union of every record's keys as columns, so sparse records line
// up under one header.
//
//	formatter, err := output.New(output.FormatTable, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	if err := formatter.Format(records); err != nil {
//	    return err
//	}
package output
