package sheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// ReadXLSX parses an XLSX workbook. When opts.Sheet names an existing
// worksheet that one is read, otherwise the first worksheet is used.
func ReadXLSX(data []byte, opts Options) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name := pickSheet(f, opts.Sheet)
	if name == "" {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", name, err)
	}

	return build(rows, opts.maxRows())
}

func pickSheet(f *excelize.File, preferred string) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	if preferred != "" {
		for _, s := range sheets {
			if s == preferred {
				return s
			}
		}
	}
	return sheets[0]
}
