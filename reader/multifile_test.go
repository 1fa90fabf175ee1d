package reader

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestReadMultipleFiles_SingleFile(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "people.parquet", people[:2])

	result, err := ReadMultipleFiles(path)
	if err != nil {
		t.Fatalf("ReadMultipleFiles() error = %v", err)
	}

	if len(result) != 2 {
		t.Errorf("ReadMultipleFiles() returned %d rows, want 2", len(result))
	}

	// a plain path keeps the file's own shape
	if _, hasFile := result[0][FileColumn]; hasFile {
		t.Errorf("ReadMultipleFiles() single file should not add %s column, but found: %v", FileColumn, result[0][FileColumn])
	}
}

func TestReadMultipleFiles_GlobPattern(t *testing.T) {
	tmpDir := t.TempDir()

	files := []struct {
		name string
		rows []person
	}{
		{"part1.parquet", people[0:1]},
		{"part2.parquet", people[1:3]},
		{"part3.parquet", people[3:5]},
	}
	for _, file := range files {
		writeParquet(t, tmpDir, file.name, file.rows)
	}

	result, err := ReadMultipleFiles(filepath.Join(tmpDir, "*.parquet"))
	if err != nil {
		t.Fatalf("ReadMultipleFiles() error = %v", err)
	}

	if len(result) != len(people) {
		t.Errorf("ReadMultipleFiles() returned %d rows, want %d", len(result), len(people))
	}

	for i, row := range result {
		file, ok := row[FileColumn].(string)
		if !ok {
			t.Fatalf("row %d: missing %s column", i, FileColumn)
		}
		if !strings.HasSuffix(file, ".parquet") {
			t.Errorf("row %d: %s = %q, want a parquet path", i, FileColumn, file)
		}
	}
}

func TestReadMultipleFiles_SpecificPattern(t *testing.T) {
	tmpDir := t.TempDir()
	writeParquet(t, tmpDir, "users_2023.parquet", people[:1])
	writeParquet(t, tmpDir, "users_2024.parquet", people[1:2])
	writeParquet(t, tmpDir, "orders_2024.parquet", people[2:])

	result, err := ReadMultipleFiles(filepath.Join(tmpDir, "users_*.parquet"))
	if err != nil {
		t.Fatalf("ReadMultipleFiles() error = %v", err)
	}

	if len(result) != 2 {
		t.Errorf("ReadMultipleFiles() returned %d rows, want 2", len(result))
	}
}

func TestReadMultipleFiles_NoMatch(t *testing.T) {
	_, err := ReadMultipleFiles(filepath.Join(t.TempDir(), "*.parquet"))
	if err == nil {
		t.Errorf("ReadMultipleFiles() expected error for no matches, got nil")
	}
}

func TestReadMultipleFiles_InvalidPattern(t *testing.T) {
	_, err := ReadMultipleFiles(filepath.Join(t.TempDir(), "[.parquet"))
	if err == nil {
		t.Errorf("ReadMultipleFiles() expected error for malformed pattern, got nil")
	}
}

func TestReader_ReadAll(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "people.parquet", people)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	if r.Path() != path {
		t.Errorf("Path() = %q, want %q", r.Path(), path)
	}
	if r.NumRows() != int64(len(people)) {
		t.Errorf("NumRows() = %d, want %d", r.NumRows(), len(people))
	}

	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != len(people) {
		t.Fatalf("ReadAll() returned %d rows, want %d", len(rows), len(people))
	}
	if rows[2]["name"] != "charlie" {
		t.Errorf("rows[2][name] = %v, want charlie", rows[2]["name"])
	}

	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestIsPattern(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"data.parquet", false},
		{"dir/data.parquet", false},
		{"*.parquet", true},
		{"part?.parquet", true},
		{"part[12].parquet", true},
	}

	for _, tt := range tests {
		if got := IsPattern(tt.path); got != tt.want {
			t.Errorf("IsPattern(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
