package reader

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"
)

// FileColumn is added to every record read through a glob pattern and holds
// the path of the file the record came from.
const FileColumn = "_file"

// maxFiles bounds how many files one glob pattern may expand to
const maxFiles = 1000

// Reader reads the records of one parquet file as maps keyed by column name.
//
// It keeps the OS file handle next to the parquet handle so Close can release
// it.
type Reader struct {
	path   string
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path and checks that it is a parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "failed to stat file")
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrapf(err, "%s is not a parquet file", path)
	}

	return &Reader{path: path, file: file, pqFile: pqFile}, nil
}

// Path returns the file the reader was opened on.
func (r *Reader) Path() string { return r.path }

// NumRows returns the row count recorded in the file metadata.
func (r *Reader) NumRows() int64 { return r.pqFile.NumRows() }

// ReadAll loads every record of the file into memory.
func (r *Reader) ReadAll() ([]map[string]any, error) {
	records := make([]map[string]any, 0, r.NumRows())

	rows := parquet.NewReader(r.pqFile)
	defer func() { _ = rows.Close() }()

	for {
		record := make(map[string]any)
		if err := rows.Read(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrapf(err, "failed to read record %d", len(records))
		}
		records = append(records, record)
	}
	return records, nil
}

// Schema returns the parquet schema of the file.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the file handle. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFile reads every record of one file.
func ReadFile(path string) ([]map[string]any, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}

// IsPattern reports whether path contains glob wildcards.
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[]{}")
}

// ReadMultipleFiles reads every file matching a glob pattern.
//
// Records read through a pattern carry a FileColumn with their source path.
// A plain path is read as a single file and left untouched, so it keeps its
// shape and any column of its own called FileColumn.
func ReadMultipleFiles(pattern string) ([]map[string]any, error) {
	if !IsPattern(pattern) {
		return ReadFile(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "invalid glob pattern")
	}
	if len(matches) == 0 {
		return nil, errors.Newf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, errors.Newf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var all []map[string]any
	for _, path := range matches {
		records, err := ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		for _, record := range records {
			record[FileColumn] = path
		}
		all = append(all, records...)
	}
	return all, nil
}
