// Package statement runs the full normalization pipeline over one acquired
// statement document: table extraction, closing-balance resolution and the
// per-job summary tally.
package statement

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-parser/internal/balance"
	"github.com/FACorreiaa/statement-parser/internal/extract"
)

// Document is the source-independent input shape: the tables found in the
// statement plus any free-text blocks worth scanning for a closing balance.
type Document struct {
	Tables []extract.RawTable
	Texts  []string
}

// Result is one processed statement.
type Result struct {
	Transactions   []extract.Record
	ClosingBalance *decimal.Decimal
	Summary        Summary
}

// Summary tallies one processing run. Date bounds come from the parsed
// calendar dates, independent of the configured rendering layout; the zero
// time means no transaction carried a date.
type Summary struct {
	JobID        uuid.UUID
	Tables       int
	TotalRows    int
	Parsed       int
	Skipped      int
	Debits       int
	Credits      int
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	EarliestDate time.Time
	LatestDate   time.Time
}

// Parser ties the extractor and balance resolver together.
type Parser struct {
	extractor *extract.Extractor
	resolver  *balance.Resolver
	logger    *slog.Logger
}

// NewParser creates a Parser; nil components fall back to defaults.
func NewParser(extractor *extract.Extractor, resolver *balance.Resolver, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if extractor == nil {
		extractor = extract.NewExtractor(nil, nil, nil, extract.DefaultRenderOptions(), logger)
	}
	if resolver == nil {
		resolver = balance.NewResolver(logger)
	}
	return &Parser{extractor: extractor, resolver: resolver, logger: logger}
}

// Process normalizes one document. Table failures surface as skipped rows in
// the summary, never as errors; processing the same document twice yields the
// same transactions and balance under a fresh job id.
func (p *Parser) Process(doc Document) Result {
	res := Result{
		Summary: Summary{
			JobID:  uuid.New(),
			Tables: len(doc.Tables),
		},
	}

	for _, table := range doc.Tables {
		tr := p.extractor.ExtractTable(table)
		res.Summary.TotalRows += tr.TotalRows
		res.Summary.Skipped += len(tr.Skipped)
		res.Transactions = append(res.Transactions, tr.Records...)
	}
	res.Summary.Parsed = len(res.Transactions)

	for _, tx := range res.Transactions {
		if tx.Amount.IsNegative() {
			res.Summary.Debits++
			res.Summary.TotalDebits = res.Summary.TotalDebits.Add(tx.Amount.Abs())
		} else {
			res.Summary.Credits++
			res.Summary.TotalCredits = res.Summary.TotalCredits.Add(tx.Amount)
		}
		if res.Summary.EarliestDate.IsZero() || tx.Posted.Before(res.Summary.EarliestDate) {
			res.Summary.EarliestDate = tx.Posted
		}
		if tx.Posted.After(res.Summary.LatestDate) {
			res.Summary.LatestDate = tx.Posted
		}
	}

	res.ClosingBalance = p.resolver.Resolve(doc.Texts, doc.Tables)

	p.logger.Info("statement processed",
		"job_id", res.Summary.JobID,
		"tables", res.Summary.Tables,
		"rows", res.Summary.TotalRows,
		"parsed", res.Summary.Parsed,
		"skipped", res.Summary.Skipped,
		"closing_balance_found", res.ClosingBalance != nil)
	return res
}
