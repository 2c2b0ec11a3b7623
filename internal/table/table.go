// Package table holds the in-memory tabular model rendered into documentation pages.
package table

import "fmt"

// Table is a header plus rows of string cells. Every row has exactly
// len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New creates an empty table with the given column labels.
func New(header ...string) *Table {
	return &Table{Header: append([]string(nil), header...)}
}

// Append adds a row. It returns an error when the cell count does not match the header.
func (t *Table) Append(cells ...string) error {
	if len(cells) != len(t.Header) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Header))
	}
	t.Rows = append(t.Rows, append([]string(nil), cells...))
	return nil
}

// Rename replaces header labels found in labels; others are left untouched.
func (t *Table) Rename(labels map[string]string) {
	for i, h := range t.Header {
		if to, ok := labels[h]; ok {
			t.Header[i] = to
		}
	}
}

// Len returns the number of body rows.
func (t *Table) Len() int { return len(t.Rows) }
