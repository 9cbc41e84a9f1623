// Package csvfile acquires raw statement tables from delimited text files.
// Statement CSV exports are schemaless and ragged, so reading stays at the
// raw-cell level; header interpretation happens downstream.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/FACorreiaa/statement-parser/internal/extract"
	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

// Read parses one delimited stream into a raw table. Rows may have differing
// widths and quoting is lenient; fully-empty rows are dropped.
func Read(src io.Reader, delimiter rune) (extract.RawTable, error) {
	r := csv.NewReader(src)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var table extract.RawTable
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		row := make(extract.RawRow, len(record))
		empty := true
		for i, cell := range record {
			row[i] = textutil.CollapseSpace(cell)
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			table = append(table, row)
		}
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("csv has no populated rows")
	}
	return table, nil
}
