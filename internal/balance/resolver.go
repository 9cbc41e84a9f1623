// Package balance resolves a statement's closing balance. The figure rarely
// lives in the transaction table itself, so resolution falls through three
// tiers: free-text patterns, summary tables, and finally the last populated
// cell of a balance column.
package balance

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-parser/internal/amount"
	"github.com/FACorreiaa/statement-parser/internal/extract"
)

// The nine closing-balance phrasings scanned against free text, in priority
// order. Each captures a trailing digit-group amount behind a fully optional
// "Rs."-style prefix; the "as on" forms skip over the statement date token so
// its digits cannot be mistaken for the amount.
var textPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)closing\s+balance[:\s]*(?:rs\.?\s*)?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)balance\s+as\s+on\s+[\d/.-]+\s*:?\s*(?:rs\.?\s*)?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)closing\s+amount[:\s]*(?:rs\.?\s*)?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)final\s+balance[:\s]*(?:rs\.?\s*)?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)balance\s+at\s+end[:\s]*(?:rs\.?\s*)?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)closing\s+bal[:\s]*(?:rs\.?\s*)?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)bal\s+as\s+on\s+[\d/.-]+\s*:?\s*(?:rs\.?\s*)?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)closing\s+balance\s*[:\s]*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)balance\s+as\s+on\s*[:\s]*([\d,]+\.?\d*)`),
}

// Header keywords marking a table worth scanning for a closing-balance row.
var summaryHeaderMarkers = []string{"opening", "closing", "balance", "summary", "total"}

// Row keywords marking the closing-balance row inside a summary table.
var summaryRowMarkers = []string{"closing", "balance as on", "final"}

// Resolver finds at most one closing balance per statement.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver; a nil logger selects slog.Default.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Resolve searches text blocks and tables for the closing balance. The first
// success across the three tiers wins; an absent result is a normal outcome,
// not an error.
func (r *Resolver) Resolve(texts []string, tables []extract.RawTable) *decimal.Decimal {
	if b := r.fromText(texts); b != nil {
		return b
	}
	if b := r.fromSummaryTables(tables); b != nil {
		return b
	}
	if b := r.fromBalanceColumn(tables); b != nil {
		return b
	}
	r.logger.Warn("closing balance not found in statement")
	return nil
}

// fromText scans every block against the phrasing patterns; pattern order
// outranks block order and the first parsed hit short-circuits.
func (r *Resolver) fromText(texts []string) *decimal.Decimal {
	for _, re := range textPatterns {
		for _, text := range texts {
			if text == "" {
				continue
			}
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			raw := strings.TrimSuffix(strings.ReplaceAll(m[1], ",", ""), ".")
			d, err := decimal.NewFromString(raw)
			if err != nil {
				continue
			}
			r.logger.Info("closing balance found in text", "value", d)
			return &d
		}
	}
	return nil
}

// fromSummaryTables looks for summary-style tables and takes the first
// parseable cell of the first closing-balance row.
func (r *Resolver) fromSummaryTables(tables []extract.RawTable) *decimal.Decimal {
	for _, t := range tables {
		if len(t) < 2 {
			continue
		}
		header := strings.ToLower(strings.Join(t.Header(), " "))
		if !containsAny(header, summaryHeaderMarkers) {
			continue
		}
		for _, row := range t.Body() {
			rowText := strings.ToLower(strings.Join(row, " "))
			if !containsAny(rowText, summaryRowMarkers) {
				continue
			}
			for _, cell := range row {
				if cell == "" {
					continue
				}
				if d, err := amount.Parse(cell); err == nil {
					r.logger.Info("closing balance found in summary table", "value", d)
					return &d
				}
			}
		}
	}
	return nil
}

// fromBalanceColumn takes the last populated, parseable balance cell of any
// table whose header carries a balance column.
func (r *Resolver) fromBalanceColumn(tables []extract.RawTable) *decimal.Decimal {
	for _, t := range tables {
		if len(t) < 2 {
			continue
		}
		balanceCol := -1
		for idx, cell := range t.Header() {
			if strings.Contains(strings.ToLower(cell), "balance") {
				balanceCol = idx
				break
			}
		}
		if balanceCol < 0 {
			continue
		}
		for i := len(t) - 1; i >= 1; i-- {
			cell := t[i].Cell(balanceCol)
			if cell == "" {
				continue
			}
			if d, err := amount.Parse(cell); err == nil {
				r.logger.Info("closing balance taken from last balance cell", "value", d)
				return &d
			}
		}
	}
	return nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
