// Package excel acquires raw statement tables from xlsx workbooks.
package excel

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-parser/internal/extract"
	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

// Sheet names that usually hold the transaction table. Workbook sheets are
// fuzzy-ranked against these so "Txn Statement" outranks "Charts".
var preferredSheets = []string{
	"transactions", "transaction", "statement", "account statement",
	"account", "history", "sheet1",
}

// Reader extracts tables and text blocks from a workbook stream.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader; a nil logger selects slog.Default.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// Read parses a workbook and returns one raw table per non-empty sheet, in
// ranked sheet order, plus the flattened cell text of every sheet for
// closing-balance scanning.
func (r *Reader) Read(src io.Reader) ([]extract.RawTable, []string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.Warn("close workbook", "error", cerr)
		}
	}()

	var tables []extract.RawTable
	var texts []string
	for _, sheet := range rankSheets(f.GetSheetList()) {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		table := cleanTable(rows)
		if len(table) == 0 {
			r.logger.Debug("skipping empty sheet", "sheet", sheet)
			continue
		}
		r.logger.Debug("sheet read", "sheet", sheet, "rows", len(table))
		tables = append(tables, table)
		texts = append(texts, table.Flatten()...)
	}

	if len(tables) == 0 {
		return nil, nil, fmt.Errorf("workbook has no populated sheets")
	}
	return tables, texts, nil
}

// rankSheets orders sheet names by their best fuzzy rank against the
// preferred names; unranked sheets keep workbook order at the back.
func rankSheets(sheets []string) []string {
	ranked := make([]string, len(sheets))
	copy(ranked, sheets)

	best := func(name string) int {
		lc := strings.ToLower(name)
		score := -1
		for _, want := range preferredSheets {
			if r := fuzzy.RankMatchFold(want, lc); r >= 0 && (score == -1 || r < score) {
				score = r
			}
		}
		if score == -1 {
			return int(^uint(0) >> 1)
		}
		return score
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return best(ranked[i]) < best(ranked[j])
	})
	return ranked
}

// cleanTable normalizes raw sheet rows: whitespace collapsed per cell,
// fully-empty rows dropped, and rows truncated to the widest populated
// column. Noise stripping waits for the downstream consumers, which know
// which punctuation matters per field.
func cleanTable(rows [][]string) extract.RawTable {
	width := 0
	cleaned := make([]extract.RawRow, 0, len(rows))
	for _, row := range rows {
		out := make(extract.RawRow, len(row))
		empty := true
		for i, cell := range row {
			out[i] = textutil.CollapseSpace(cell)
			if out[i] != "" {
				empty = false
				if i+1 > width {
					width = i + 1
				}
			}
		}
		if !empty {
			cleaned = append(cleaned, out)
		}
	}

	table := make(extract.RawTable, 0, len(cleaned))
	for _, row := range cleaned {
		if len(row) > width {
			row = row[:width]
		}
		table = append(table, row)
	}
	return table
}
