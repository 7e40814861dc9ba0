// Package extract resolves raw CSV cells into typed field values using a
// header-name to column-index map built once per file.
package extract

import (
	"strings"

	"github.com/fleetops/fuelimport/internal/importerror"
)

// HeaderMap builds a column-name to index map from the header record.
// Column names are trimmed; matching is case-sensitive.
func HeaderMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[strings.TrimSpace(name)] = i
	}
	return m
}

// Row is one data record plus the shared header map. It is a pure
// lookup-and-trim view over the raw cells; it never mutates them.
type Row struct {
	header map[string]int
	cells  []string
}

// NewRow wraps a record with the header map of its file.
func NewRow(header map[string]int, cells []string) Row {
	return Row{header: header, cells: cells}
}

func (r Row) value(column string) (string, bool) {
	idx, ok := r.header[column]
	if !ok || idx < 0 || idx >= len(r.cells) {
		return "", false
	}
	return strings.TrimSpace(r.cells[idx]), true
}

// Required returns the trimmed value of the named column. It fails with
// MissingColumnError when the header lacks the column and MissingValueError
// when the cell is empty after trimming.
func (r Row) Required(column string) (string, error) {
	if _, ok := r.header[column]; !ok {
		return "", &importerror.MissingColumnError{Column: column}
	}
	v, _ := r.value(column)
	if v == "" {
		return "", &importerror.MissingValueError{Column: column}
	}
	return v, nil
}

// Optional returns the trimmed value and true, or ("", false) when the column
// is absent from the header or the cell is blank. It never errors.
func (r Row) Optional(column string) (string, bool) {
	v, ok := r.value(column)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// OptionalDefault behaves like Optional, substituting def for absent values.
func (r Row) OptionalDefault(column, def string) string {
	if v, ok := r.Optional(column); ok {
		return v
	}
	return def
}
