// Package extract classifies raw statement tables into column-layout
// dialects and walks their body rows into validated transaction records.
package extract

import (
	"strings"

	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

// RawRow is an ordered sequence of raw cell strings. Cells may be empty and
// rows may be shorter than the header; Cell makes out-of-range access safe.
type RawRow []string

// Cell returns the cell at idx, or "" when the row has no such column.
func (r RawRow) Cell(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// RawTable is an ordered sequence of rows. The first row is conventionally,
// but not reliably, a header.
type RawTable []RawRow

// Header returns the first row, or nil for an empty table.
func (t RawTable) Header() RawRow {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Body returns the rows after the header.
func (t RawTable) Body() []RawRow {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// Flatten renders every row as a single " | "-joined text block, whitespace
// normalized cell by cell. Empty rows are dropped. The blocks feed
// balance-pattern scanning over sources that have no page text of their own.
func (t RawTable) Flatten() []string {
	blocks := make([]string, 0, len(t))
	for _, row := range t {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if c := textutil.CollapseSpace(cell); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) > 0 {
			blocks = append(blocks, strings.Join(cells, " | "))
		}
	}
	return blocks
}
