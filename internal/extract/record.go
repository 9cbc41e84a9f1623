package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

// Transaction is the transient per-row value assembled by the row walk. It
// exists only between extraction and rendering; nothing mutates it later.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	HasAmount   bool
	Balance     *decimal.Decimal
	Category    string
}

// Valid reports whether the transaction satisfies the emission invariant:
// a real calendar date, a resolved amount and a non-empty description.
func (t *Transaction) Valid() bool {
	return !t.Date.IsZero() && t.HasAmount && strings.TrimSpace(t.Description) != ""
}

// Record is the canonical rendered output shape.
type Record struct {
	Date        string           `json:"date" csv:"date"`
	Description string           `json:"description" csv:"description"`
	Amount      decimal.Decimal  `json:"amount" csv:"amount"`
	Balance     *decimal.Decimal `json:"balance,omitempty" csv:"balance"`
	DebitCredit string           `json:"debit_credit" csv:"debit_credit"`
	Category    string           `json:"category,omitempty" csv:"category"`

	// Posted carries the parsed calendar date through rendering so summary
	// tallies stay correct under any configured date layout. It never
	// serializes.
	Posted time.Time `json:"-" csv:"-"`
}

// RenderOptions controls output rendering.
type RenderOptions struct {
	DateLayout      string
	AmountPrecision int32
	IncludeCategory bool
}

// DefaultRenderOptions returns ISO dates, 2-decimal amounts and categories
// included.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		DateLayout:      "2006-01-02",
		AmountPrecision: 2,
		IncludeCategory: true,
	}
}

// Render produces the output record for a validated transaction. The
// debit_credit tag derives purely from the amount sign.
func (t *Transaction) Render(opts RenderOptions) Record {
	rec := Record{
		Date:        t.Date.Format(opts.DateLayout),
		Description: textutil.Clean(t.Description),
		Amount:      t.Amount.Round(opts.AmountPrecision),
		DebitCredit: "credit",
		Posted:      t.Date,
	}
	if t.Amount.IsNegative() {
		rec.DebitCredit = "debit"
	}
	if t.Balance != nil {
		b := t.Balance.Round(opts.AmountPrecision)
		rec.Balance = &b
	}
	if opts.IncludeCategory {
		rec.Category = t.Category
	}
	return rec
}

// SkipReason is the closed set of reasons a body row produced no record.
type SkipReason int

const (
	// SkipShortRow marks rows narrower than the dialect's minimum width.
	SkipShortRow SkipReason = iota
	// SkipSummaryRow marks running totals and section headers.
	SkipSummaryRow
	// SkipNoAmount marks debit/credit-pair rows where both sides are zero.
	SkipNoAmount
	// SkipInvalid marks rows failing the date/description/amount invariant.
	SkipInvalid
)

func (r SkipReason) String() string {
	switch r {
	case SkipShortRow:
		return "short row"
	case SkipSummaryRow:
		return "summary row"
	case SkipNoAmount:
		return "no amount"
	default:
		return "invalid transaction"
	}
}

// RowError records one skipped body row. Row-level failures never abort the
// table walk, so these accumulate alongside the accepted records.
type RowError struct {
	Row    int
	Reason SkipReason
}

// TableResult aggregates one table's walk.
type TableResult struct {
	Dialect   Dialect
	Records   []Record
	Skipped   []RowError
	TotalRows int
}
