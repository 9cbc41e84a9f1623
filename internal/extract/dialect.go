package extract

import (
	"strings"

	"github.com/FACorreiaa/statement-parser/internal/columns"
)

// Dialect identifies one of the fixed column-layout conventions observed
// across bank statement formats. The set is closed: adding a format means
// adding a constant here plus one rule in Classify.
type Dialect int

const (
	// DialectGeneric resolves columns by header mapping and inference.
	DialectGeneric Dialect = iota
	// DialectSpecial covers serial-numbered layouts
	// (S.No, Date, Transaction Id, Remarks, Debit, Credit).
	DialectSpecial
	// DialectExtended covers IDFC-style layouts (Transaction Date, Value
	// Date, Particulars, Cheque No, Debit, Credit, Balance).
	DialectExtended
	// DialectSimple covers four-column layouts
	// (Date, Description, Amount, Type).
	DialectSimple
)

func (d Dialect) String() string {
	switch d {
	case DialectSpecial:
		return "special"
	case DialectExtended:
		return "extended"
	case DialectSimple:
		return "simple"
	default:
		return "generic"
	}
}

// ColumnMap resolves canonical fields to zero-based column indexes. Keys are
// present only for resolved fields.
type ColumnMap map[columns.Field]int

// Layout carries everything the row walk needs for one table: the dialect
// tag plus that dialect's column-resolution data.
type Layout struct {
	Dialect Dialect
	Columns ColumnMap
	// DescAlt is a secondary description column tried when the primary one
	// is empty (-1 when the dialect has none).
	DescAlt int
	// TypeCol is the Simple dialect's Dr/Cr sign column (-1 otherwise).
	TypeCol int
	// MinCells is the dialect's minimum row width; shorter rows are skipped.
	MinCells int
}

// Classify inspects the header row's joined lowercase text and selects the
// extraction layout, checking dialects in priority order.
func Classify(header RawRow, mapper *columns.Mapper) Layout {
	joined := strings.ToLower(strings.Join(header, " "))

	switch {
	case containsAny(joined, "s.no", "transaction id", "remarks"):
		return Layout{
			Dialect: DialectSpecial,
			Columns: ColumnMap{
				columns.FieldDate:        1,
				columns.FieldDescription: 3,
				columns.FieldDebit:       4,
				columns.FieldCredit:      5,
			},
			DescAlt:  2,
			TypeCol:  -1,
			MinCells: 4,
		}
	case containsAny(joined, "transaction date", "value date", "particulars"):
		return Layout{
			Dialect: DialectExtended,
			Columns: ColumnMap{
				columns.FieldDate:        0,
				columns.FieldDescription: 2,
				columns.FieldDebit:       4,
				columns.FieldCredit:      5,
				columns.FieldBalance:     6,
			},
			DescAlt:  -1,
			TypeCol:  -1,
			MinCells: 4,
		}
	case strings.Contains(joined, "date") &&
		(strings.Contains(joined, "amount") || strings.Contains(joined, "type")):
		// A bare date/description header is not enough: paired debit/credit
		// tables also mention "date" and must fall through to Generic.
		return Layout{
			Dialect: DialectSimple,
			Columns: ColumnMap{
				columns.FieldDate:        0,
				columns.FieldDescription: 1,
				columns.FieldAmount:      2,
			},
			DescAlt:  -1,
			TypeCol:  3,
			MinCells: 3,
		}
	default:
		return genericLayout(header, mapper)
	}
}

// Header keywords used by the Generic dialect's secondary inference pass,
// broader than the column mapper's curated variants.
var (
	dateHints   = []string{"date", "dt", "value", "posting", "transaction"}
	descHints   = []string{"desc", "narration", "particulars", "details", "memo", "remarks", "transaction id"}
	debitHints  = []string{"debit", "dr", "withdrawal"}
	creditHints = []string{"credit", "cr", "deposit"}
	amountHints = []string{"amount", "rs"}
)

// genericLayout maps every header cell through the column mapper, then runs
// keyword inference for whatever required fields stayed unresolved. A
// debit/credit pair takes precedence over single-amount inference.
func genericLayout(header RawRow, mapper *columns.Mapper) Layout {
	cm := ColumnMap{}
	for idx, cell := range header {
		if f, ok := mapper.Map(cell); ok {
			cm[f] = idx
		}
	}

	if _, ok := cm[columns.FieldDate]; !ok {
		inferColumn(header, cm, columns.FieldDate, dateHints)
	}
	if _, ok := cm[columns.FieldDescription]; !ok {
		inferColumn(header, cm, columns.FieldDescription, descHints)
	}
	if _, ok := cm[columns.FieldAmount]; !ok {
		_, hasDebit := cm[columns.FieldDebit]
		_, hasCredit := cm[columns.FieldCredit]
		if !hasDebit && !hasCredit {
			inferColumn(header, cm, columns.FieldDebit, debitHints)
			inferColumn(header, cm, columns.FieldCredit, creditHints)
			_, hasDebit = cm[columns.FieldDebit]
			_, hasCredit = cm[columns.FieldCredit]
		}
		if !hasDebit && !hasCredit {
			inferColumn(header, cm, columns.FieldAmount, amountHints)
		}
	}

	return Layout{
		Dialect:  DialectGeneric,
		Columns:  cm,
		DescAlt:  -1,
		TypeCol:  -1,
		MinCells: 2,
	}
}

func inferColumn(header RawRow, cm ColumnMap, f columns.Field, hints []string) {
	for idx, cell := range header {
		lc := strings.ToLower(cell)
		for _, h := range hints {
			if strings.Contains(lc, h) {
				cm[f] = idx
				return
			}
		}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
