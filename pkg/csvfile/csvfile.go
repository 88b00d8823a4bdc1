// Package csvfile reads and writes header-less CSV files of flat records.
//
// encoding/csv folds a quoted CRLF into LF on read, so carriage returns are
// stored as the two characters \r and backslashes are doubled. Read undoes
// both, and every field comes back exactly as written.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\r`, "\r")
)

// Read returns every row of the file at path. A missing file reads as no
// rows so a fresh project starts empty.
func Read(path string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, row := range rows {
		for i, field := range row {
			row[i] = unescaper.Replace(field)
		}
	}
	return rows, nil
}

// Write replaces the file at path with rows, creating parent directories.
// The rows are written to a sibling temp file first and renamed into place.
func Write(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(escape(rows)); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	return os.Rename(tmp.Name(), path)
}

func escape(rows [][]string) [][]string {
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = make([]string, len(row))
		for j, field := range row {
			escaped[i][j] = escaper.Replace(field)
		}
	}
	return escaped
}
