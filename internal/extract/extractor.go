package extract

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-parser/internal/amount"
	"github.com/FACorreiaa/statement-parser/internal/categorize"
	"github.com/FACorreiaa/statement-parser/internal/columns"
	"github.com/FACorreiaa/statement-parser/internal/dateparse"
	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

// First-cell markers identifying running totals and section headers that
// must never be emitted as transactions.
var summaryMarkers = []string{
	"opening", "closing", "total", "balance", "summary", "s.no",
}

// Extractor walks classified tables into validated, rendered records.
type Extractor struct {
	dates  *dateparse.Parser
	mapper *columns.Mapper
	engine *categorize.Engine
	render RenderOptions
	logger *slog.Logger
}

// NewExtractor wires an extractor. Nil components fall back to defaults, so
// NewExtractor(nil, nil, nil, DefaultRenderOptions(), nil) is fully usable.
func NewExtractor(dates *dateparse.Parser, mapper *columns.Mapper, engine *categorize.Engine, render RenderOptions, logger *slog.Logger) *Extractor {
	if dates == nil {
		dates = dateparse.New(nil)
	}
	if mapper == nil {
		mapper = columns.NewMapper(nil)
	}
	if engine == nil {
		engine = categorize.NewEngine(nil)
	}
	if render.DateLayout == "" {
		render = DefaultRenderOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{dates: dates, mapper: mapper, engine: engine, render: render, logger: logger}
}

// ExtractTable classifies one table and walks its body rows. Tables shorter
// than two rows yield an empty result; row failures are collected, never
// fatal.
func (e *Extractor) ExtractTable(t RawTable) TableResult {
	res := TableResult{Dialect: DialectGeneric}
	if len(t) < 2 {
		return res
	}

	layout := Classify(t.Header(), e.mapper)
	res.Dialect = layout.Dialect

	for i, row := range t.Body() {
		res.TotalRows++
		rowNum := i + 1

		rec, skip := e.extractRow(row, layout)
		if skip != nil {
			skip.Row = rowNum
			res.Skipped = append(res.Skipped, *skip)
			e.logger.Debug("row skipped",
				"row", rowNum,
				"reason", skip.Reason.String(),
				"dialect", layout.Dialect.String())
			continue
		}
		res.Records = append(res.Records, *rec)
	}

	if len(res.Records) == 0 && res.TotalRows > 0 {
		e.logger.Warn("table yielded no transactions",
			"dialect", layout.Dialect.String(), "rows", res.TotalRows)
	}
	return res
}

// extractRow resolves one body row against the table layout. A nil record
// comes with the typed reason the row was skipped.
func (e *Extractor) extractRow(row RawRow, layout Layout) (*Record, *RowError) {
	if len(row) < layout.MinCells {
		return nil, &RowError{Reason: SkipShortRow}
	}
	first := strings.ToLower(row.Cell(0))
	for _, marker := range summaryMarkers {
		if strings.Contains(first, marker) {
			return nil, &RowError{Reason: SkipSummaryRow}
		}
	}

	tx := Transaction{}

	// Date: mapped column first, then the first cell anywhere that parses.
	if idx, ok := layout.Columns[columns.FieldDate]; ok {
		if d, err := e.dates.Parse(row.Cell(idx)); err == nil {
			tx.Date = d
		} else if row.Cell(idx) != "" {
			e.logger.Warn("unparseable date", "value", row.Cell(idx))
		}
	}
	if tx.Date.IsZero() {
		for _, cell := range row {
			if d, err := e.dates.Parse(cell); err == nil {
				tx.Date = d
				break
			}
		}
	}

	// Description: mapped column, dialect fallback column, then the longest
	// cleaned cell in the row.
	if idx, ok := layout.Columns[columns.FieldDescription]; ok {
		tx.Description = textutil.Clean(row.Cell(idx))
	}
	if tx.Description == "" && layout.DescAlt >= 0 {
		tx.Description = textutil.Clean(row.Cell(layout.DescAlt))
	}
	if tx.Description == "" {
		for _, cell := range row {
			if c := textutil.Clean(cell); len(c) > len(tx.Description) {
				tx.Description = c
			}
		}
	}

	if skip := e.resolveAmount(&tx, row, layout); skip != nil {
		return nil, skip
	}

	if idx, ok := layout.Columns[columns.FieldBalance]; ok && row.Cell(idx) != "" {
		if b, err := amount.Parse(row.Cell(idx)); err == nil {
			tx.Balance = &b
		}
	}

	if tag, ok := e.engine.Categorize(tx.Description); ok {
		tx.Category = tag
	}

	if !tx.Valid() {
		return nil, &RowError{Reason: SkipInvalid}
	}

	rec := tx.Render(e.render)
	return &rec, nil
}

// resolveAmount applies the layout's amount strategy: a single mapped amount
// column (with optional Dr/Cr type forcing), a debit/credit pair folded into
// one signed value, or a scan across all cells as the last resort.
func (e *Extractor) resolveAmount(tx *Transaction, row RawRow, layout Layout) *RowError {
	amountIdx, hasAmountCol := layout.Columns[columns.FieldAmount]
	debitIdx, hasDebitCol := layout.Columns[columns.FieldDebit]
	creditIdx, hasCreditCol := layout.Columns[columns.FieldCredit]

	switch {
	case hasAmountCol:
		a, err := amount.Parse(row.Cell(amountIdx))
		if err != nil {
			if row.Cell(amountIdx) != "" {
				e.logger.Warn("unparseable amount", "value", row.Cell(amountIdx))
			}
			return nil // validation drops the row as amount-less
		}
		if layout.TypeCol >= 0 {
			a = applyTypeSign(a, row.Cell(layout.TypeCol))
		}
		tx.Amount, tx.HasAmount = a, true

	case hasDebitCol || hasCreditCol:
		debit := decimal.Zero
		credit := decimal.Zero
		if hasDebitCol {
			if a, err := amount.Parse(row.Cell(debitIdx)); err == nil {
				debit = a
			}
		}
		if hasCreditCol {
			if a, err := amount.Parse(row.Cell(creditIdx)); err == nil {
				credit = a
			}
		}
		switch {
		case !debit.IsZero():
			tx.Amount, tx.HasAmount = debit.Abs().Neg(), true
		case !credit.IsZero():
			tx.Amount, tx.HasAmount = credit.Abs(), true
		default:
			return &RowError{Reason: SkipNoAmount}
		}

	default:
		for _, cell := range row {
			if a, err := amount.Parse(cell); err == nil {
				tx.Amount, tx.HasAmount = a, true
				break
			}
		}
	}
	return nil
}

// applyTypeSign forces the amount sign from a Dr/Cr type cell.
func applyTypeSign(a decimal.Decimal, typeCell string) decimal.Decimal {
	t := strings.ToUpper(typeCell)
	switch {
	case strings.Contains(t, "DR") || strings.Contains(t, "DEBIT"):
		return a.Abs().Neg()
	case strings.Contains(t, "CR") || strings.Contains(t, "CREDIT"):
		return a.Abs()
	}
	return a
}
