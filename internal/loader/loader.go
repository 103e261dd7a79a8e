// Package loader reads a delimited award-records file into a table.Table.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"awardeda/internal/table"
)

// LoadError is returned for any failure to read or parse the input. Callers
// treat it as "no data" rather than a crash.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load failed: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var ErrEmptyInput = errors.New("no columns to parse from file")

type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
}

// missingMarkers are the strings read as null. Matching is exact.
var missingMarkers = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"NULL": {}, "null": {}, "None": {}, "<NA>": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {},
	"-1.#IND": {}, "-1.#QNAN": {}, "1.#IND": {}, "1.#QNAN": {},
}

func IsMissing(raw string) bool {
	_, ok := missingMarkers[raw]
	return ok
}

func Load(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return t, nil
}

func Read(r io.Reader, opts Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Err: ErrEmptyInput}
		}
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}
	names := cleanHeader(header)

	var raw [][]table.Value
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Err: fmt.Errorf("read row %d: %w", len(raw)+1, err)}
		}
		if len(rec) > len(names) {
			// CSV line number: header is line 1.
			return nil, &LoadError{Err: fmt.Errorf("line %d: expected %d fields, saw %d", len(raw)+2, len(names), len(rec))}
		}
		row := make([]table.Value, len(names))
		for i, cell := range rec {
			if !IsMissing(cell) {
				row[i] = table.Str(cell)
			}
		}
		raw = append(raw, row)
	}

	cols := make([]table.Column, len(names))
	for i, n := range names {
		cols[i] = table.Column{Name: n, Kind: inferKind(raw, i)}
	}
	rows := make([]table.Row, len(raw))
	for i, r := range raw {
		rows[i] = r
	}

	t, err := table.New(cols, rows)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return t, nil
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func inferKind(rows [][]table.Value, col int) table.Kind {
	isInt, isFloat, isBool := true, true, true
	seen := false
	for _, r := range rows {
		v := r[col]
		if !v.Valid {
			continue
		}
		seen = true
		s := strings.TrimSpace(v.Text)
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isFloat = false
			}
		}
		// Booleans must match exactly; " True" stays text so the trim step
		// cleans it.
		if isBool {
			switch v.Text {
			case "True", "False", "true", "false", "TRUE", "FALSE":
			default:
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			return table.KindString
		}
	}
	switch {
	case !seen:
		return table.KindString
	case isInt:
		return table.KindInt
	case isFloat:
		return table.KindFloat
	case isBool:
		return table.KindBool
	}
	return table.KindString
}
