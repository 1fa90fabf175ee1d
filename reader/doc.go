// Package reader loads Apache Parquet files as records and describes their
// columns.
//
// Records are maps keyed by column name, which is the record shape the
// command line tool and the HTTP server query over:
//
//	records, err := reader.ReadMultipleFiles("data/*.parquet")
//	if err != nil {
//	    return err
//	}
//
// Records read through a glob pattern carry a "_file" column with their
// source path. A plain path is read as-is.
//
// # Schema Introspection
//
// ExtractSchemaInfo lists the leaf columns of a file, using dot notation for
// columns nested in groups. EntityFromSchema turns that listing into a
// policy entity that allows filtering and sorting on every top-level scalar
// column:
//
//	infos, err := reader.ExtractSchemaInfo("data.parquet")
//	if err != nil {
//	    return err
//	}
//	entity, skipped := reader.EntityFromSchema("data", infos)
//
// Always call Close on a Reader when done to release its file handle.
package reader
