// Package table holds the in-memory tabular model produced by the sheet
// readers and consumed by the detector, aggregator and reconciliation
// engine. Cells are kept as raw strings; coercion to numbers and dates
// happens lazily and never fails (unparseable cells count as absent).
package table

import "fmt"

// Table is an ordered set of named columns over row-major string cells.
// Every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates an empty table with the given headers.
func New(headers []string) *Table {
	return &Table{Headers: headers}
}

// AppendRow adds a row, padding or truncating it to the header width so the
// equal-row-length invariant always holds.
func (t *Table) AppendRow(cells []string) {
	row := make([]string, len(t.Headers))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at (row, column name). Missing columns and
// out-of-range rows yield the empty string.
func (t *Table) Value(row int, name string) string {
	i := t.Index(name)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][i]
}

// Column returns all cells of the named column in row order, or nil when
// the column does not exist.
func (t *Table) Column(name string) []string {
	i := t.Index(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// AddColumn appends a derived column. The values slice must cover every
// row; shorter slices are padded with empty cells. If the name collides
// with an existing header it is suffixed the same way duplicate headers
// are ("_2", "_3", ...), and the final name is returned.
func (t *Table) AddColumn(name string, values []string) string {
	name = t.uniqueName(name)
	t.Headers = append(t.Headers, name)
	for r := range t.Rows {
		v := ""
		if r < len(values) {
			v = values[r]
		}
		t.Rows[r] = append(t.Rows[r], v)
	}
	return name
}

func (t *Table) uniqueName(name string) string {
	if t.Index(name) < 0 {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if t.Index(candidate) < 0 {
			return candidate
		}
	}
}
