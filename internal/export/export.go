// Package export writes a cleaned table to CSV, XLSX and SQLite files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"awardeda/internal/table"
)

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// WriteCSV writes t with a header row. Null cells become empty fields.
func WriteCSV(path string, t *table.Table) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}

	w := csv.NewWriter(f)
	cols := t.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	rec := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			rec[j] = v.Text
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// typed converts a cell to the Go value matching its column kind. Values
// that fail to parse fall back to their text.
func typed(kind table.Kind, v table.Value) any {
	if !v.Valid {
		return nil
	}
	s := strings.TrimSpace(v.Text)
	switch kind {
	case table.KindInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case table.KindFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case table.KindBool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return v.Text
}
