// Package table holds the in-memory Record Table passed between the loader,
// the cleaning pipeline and the reporters.
//
// A Table is immutable once built. Every transformation returns a new Table so
// a caller never observes its input changing underneath it.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return "object"
	}
}

// Numeric reports whether values of this kind take part in numeric statistics.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

type Column struct {
	Name string
	Kind Kind
}

// Value is a nullable cell. The zero Value is null.
type Value struct {
	Text  string
	Valid bool
}

func Str(s string) Value { return Value{Text: s, Valid: true} }

func Null() Value { return Value{} }

// Empty reports whether the value is null or holds only whitespace.
func (v Value) Empty() bool {
	return !v.Valid || strings.TrimSpace(v.Text) == ""
}

type Row []Value

type Table struct {
	columns []Column
	rows    []Row
	index   map[string]int
}

// New builds a Table from copies of columns and rows.
func New(columns []Column, rows []Row) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		index[c.Name] = i
	}
	cp := make([]Row, len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(r), len(columns))
		}
		cp[i] = append(Row(nil), r...)
	}
	return &Table{
		columns: append([]Column(nil), columns...),
		rows:    cp,
		index:   index,
	}, nil
}

// derive shares column metadata with t. Callers hand over ownership of rows.
func (t *Table) derive(rows []Row) *Table {
	return &Table{columns: t.columns, rows: rows, index: t.index}
}

func (t *Table) Len() int   { return len(t.rows) }
func (t *Table) Width() int { return len(t.columns) }

func (t *Table) Shape() (rows, cols int) {
	return len(t.rows), len(t.columns)
}

func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

func (t *Table) Row(i int) Row {
	return append(Row(nil), t.rows[i]...)
}

func (t *Table) Value(row int, name string) (Value, bool) {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= len(t.rows) {
		return Value{}, false
	}
	return t.rows[row][i], true
}

// Values returns a copy of a column's cells in row order, or nil if the
// column does not exist.
func (t *Table) Values(name string) []Value {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]Value, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// Filter returns a new Table with the rows for which keep returns true, in
// their original order. keep receives a copy of each row.
func (t *Table) Filter(keep func(Row) bool) *Table {
	rows := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(append(Row(nil), r...)) {
			rows = append(rows, r)
		}
	}
	return t.derive(rows)
}

// MapColumns applies fn to every non-null cell of every column of the given
// kind. It returns the new Table and the number of cells whose text changed.
func (t *Table) MapColumns(kind Kind, fn func(string) string) (*Table, int) {
	var targets []int
	for i, c := range t.columns {
		if c.Kind == kind {
			targets = append(targets, i)
		}
	}
	rows := make([]Row, len(t.rows))
	changed := 0
	for r, row := range t.rows {
		out := append(Row(nil), row...)
		for _, i := range targets {
			if !out[i].Valid {
				continue
			}
			next := fn(out[i].Text)
			if next != out[i].Text {
				out[i].Text = next
				changed++
			}
		}
		rows[r] = out
	}
	return t.derive(rows), changed
}

// DedupeRows drops rows identical to an earlier row across all columns. A
// null cell never equals a non-null one, even an empty string.
func (t *Table) DedupeRows() (*Table, int) {
	seen := make(map[string]struct{}, len(t.rows))
	rows := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		k := rowKey(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		rows = append(rows, r)
	}
	return t.derive(rows), len(t.rows) - len(rows)
}

func rowKey(r Row) string {
	var b strings.Builder
	for _, v := range r {
		if !v.Valid {
			b.WriteByte(0x01)
			continue
		}
		b.WriteString(strconv.Quote(v.Text))
	}
	return b.String()
}

type ColumnNulls struct {
	Name    string `json:"name"`
	Kind    string `json:"dtype"`
	NonNull int    `json:"non_null"`
	Null    int    `json:"null"`
}

func (t *Table) NullCounts() []ColumnNulls {
	out := make([]ColumnNulls, len(t.columns))
	for i, c := range t.columns {
		out[i] = ColumnNulls{Name: c.Name, Kind: c.Kind.String()}
	}
	for _, r := range t.rows {
		for i, v := range r {
			if v.Valid {
				out[i].NonNull++
			} else {
				out[i].Null++
			}
		}
	}
	return out
}

func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != o.columns[i] {
			return false
		}
	}
	for r := range t.rows {
		for i := range t.rows[r] {
			if t.rows[r][i] != o.rows[r][i] {
				return false
			}
		}
	}
	return true
}
