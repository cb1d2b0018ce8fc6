// Package sheet loads XLSX and CSV uploads into the tabular model. The
// readers are forgiving about real-world spreadsheets: ragged rows,
// duplicate or blank headers, stray empty rows and columns.
package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// Options tune a read. Zero values mean no sheet preference and the
// default row cap.
type Options struct {
	Sheet   string // preferred worksheet name; falls back to the first
	MaxRows int    // data rows kept, 0 means DefaultMaxRows
}

// DefaultMaxRows bounds memory for oversized uploads.
const DefaultMaxRows = 50000

func (o Options) maxRows() int {
	if o.MaxRows > 0 {
		return o.MaxRows
	}
	return DefaultMaxRows
}

// Read dispatches on the file extension. XLSX and XLSM go through
// excelize, everything else is treated as CSV.
func Read(name string, data []byte, opts Options) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xls":
		return ReadXLSX(data, opts)
	case ".csv", ".txt", "":
		return ReadCSV(data, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(name))
	}
}

// build turns a raw cell matrix into a Table: the first non-blank row is
// the header, blank rows are dropped, blank unnamed columns are pruned
// and data rows are capped.
func build(raw [][]string, maxRows int) (*table.Table, error) {
	for len(raw) > 0 && blankRow(raw[0]) {
		raw = raw[1:]
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet has no header row")
	}

	headers := dedupeHeaders(raw[0])
	t := table.New(headers)
	for _, row := range raw[1:] {
		if blankRow(row) {
			continue
		}
		t.AppendRow(row)
		if t.RowCount() >= maxRows {
			break
		}
	}
	pruneBlankColumns(t)
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("sheet has no usable columns")
	}
	return t, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// dedupeHeaders trims header cells, names blank ones column_N and
// suffixes duplicates with _2, _3 and so on, matching how derived
// columns are named.
func dedupeHeaders(cells []string) []string {
	out := make([]string, 0, len(cells))
	used := make(map[string]bool, len(cells))
	for i, c := range cells {
		h := strings.TrimSpace(c)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		name := h
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		used[name] = true
		out = append(out, name)
	}
	return out
}

// pruneBlankColumns drops auto-named columns whose cells are all blank.
// Named columns stay even when empty, the detector may still want them.
func pruneBlankColumns(t *table.Table) {
	keep := make([]int, 0, len(t.Headers))
	for i, h := range t.Headers {
		if !strings.HasPrefix(h, "column_") {
			keep = append(keep, i)
			continue
		}
		empty := true
		for _, row := range t.Rows {
			if strings.TrimSpace(row[i]) != "" {
				empty = false
				break
			}
		}
		if !empty {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Headers) {
		return
	}
	headers := make([]string, len(keep))
	for j, i := range keep {
		headers[j] = t.Headers[i]
	}
	for r, row := range t.Rows {
		slim := make([]string, len(keep))
		for j, i := range keep {
			slim[j] = row[i]
		}
		t.Rows[r] = slim
	}
	t.Headers = headers
}
