// Package columns maps raw statement column headers onto the canonical
// transaction fields. Institutions disagree on header naming, so matching
// runs through four tiers: exact variant match, substring match, shared-word
// match and a last-resort keyword match.
package columns

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

// Field enumerates the canonical transaction attributes raw columns map onto.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldDebit       Field = "debit"
	FieldCredit      Field = "credit"
	FieldBalance     Field = "balance"
)

// fieldOrder is the resolution sweep order; the first satisfied field wins.
var fieldOrder = []Field{
	FieldDate, FieldDescription, FieldAmount,
	FieldDebit, FieldCredit, FieldBalance,
}

// Mappings holds the known header variants per canonical field. Variants are
// lowercase, already normalized forms.
type Mappings map[Field][]string

// DefaultMappings returns the curated variant lists observed across bank
// statement formats. Debit/credit-like names deliberately stay out of the
// Amount list so paired unsigned columns resolve to their own fields.
func DefaultMappings() Mappings {
	return Mappings{
		FieldDate: {
			"date", "transaction date", "posting date", "value date",
			"date posted", "date of transaction",
			"value dt", "posting dt", "transaction dt",
		},
		FieldDescription: {
			"description", "transaction description", "details", "narration",
			"particulars", "memo", "reference", "transaction details",
			"merchant", "payee", "description of transaction",
			"transaction particulars", "remarks", "transaction id",
		},
		FieldAmount: {
			"amount", "transaction amount", "sum", "total",
			"amount(rs.)", "amount (rs.)", "amount(rs)", "amount (rs)",
		},
		FieldDebit: {
			"debit", "withdrawal", "payment", "out", "dr",
			"debit amount", "amount debited", "withdrawn",
		},
		FieldCredit: {
			"credit", "deposit", "receipt", "in", "cr",
			"credit amount", "amount credited", "deposited",
		},
		FieldBalance: {
			"balance", "running balance", "closing balance",
			"available balance", "account balance", "current balance",
			"balance after transaction",
		},
	}
}

// fallbackRule pairs a field with its last-resort keywords, checked only
// when no variant tier matches.
type fallbackRule struct {
	field    Field
	keywords []string
}

// defaultFallbacks returns the last-resort keyword table that accompanies
// DefaultMappings. The rules are checked in field order.
func defaultFallbacks() []fallbackRule {
	return []fallbackRule{
		{FieldDate, []string{"date", "dt"}},
		{FieldDescription, []string{"desc", "narration", "particulars", "details"}},
		{FieldAmount, []string{"amount", "debit", "credit", "dr", "cr"}},
		{FieldBalance, []string{"balance", "bal"}},
	}
}

var (
	leadingArticle = regexp.MustCompile(`^(the|a|an)\s+`)
	genericSuffix  = regexp.MustCompile(`\s+(amount|date|description|balance)$`)
)

// Normalize lowercases and cleans a header cell, stripping leading articles
// and trailing generic suffixes so "The Posting Date" and "posting dt"
// compare on equal footing.
func Normalize(header string) string {
	n := strings.ToLower(textutil.Clean(header))
	n = leadingArticle.ReplaceAllString(n, "")
	n = genericSuffix.ReplaceAllString(n, "")
	return n
}

// Mapper resolves header cells against an injected variant table.
type Mapper struct {
	mappings  Mappings
	fallbacks []fallbackRule
}

// NewMapper creates a Mapper. A nil mappings table selects DefaultMappings
// together with its last-resort keywords; an injected table resolves through
// the variant tiers alone, so tests see only what they configured.
func NewMapper(m Mappings) *Mapper {
	if m == nil {
		return &Mapper{mappings: DefaultMappings(), fallbacks: defaultFallbacks()}
	}
	return &Mapper{mappings: m}
}

// Map resolves one raw header cell to at most one canonical field. Tiers run
// across all fields before the next tier is tried, so an exact match on a
// later field beats a substring match on an earlier one.
func (m *Mapper) Map(header string) (Field, bool) {
	normalized := Normalize(header)
	if normalized == "" {
		return "", false
	}

	// Tier 1: exact variant match.
	for _, f := range fieldOrder {
		for _, v := range m.mappings[f] {
			if v == normalized {
				return f, true
			}
		}
	}

	// Tier 2: substring match, either direction. The variant-in-header
	// direction matches on word boundaries only; two-letter variants like
	// "in" or "dr" would otherwise claim headers such as "running".
	for _, f := range fieldOrder {
		for _, v := range m.mappings[f] {
			if containsWord(normalized, v) || strings.Contains(v, normalized) {
				return f, true
			}
		}
	}

	// Tier 3: any shared word between header and variant.
	words := strings.Fields(normalized)
	for _, f := range fieldOrder {
		for _, v := range m.mappings[f] {
			if sharesWord(words, strings.Fields(v)) {
				return f, true
			}
		}
	}

	// Tier 4: last-resort keywords on the normalized text.
	for _, fk := range m.fallbacks {
		for _, kw := range fk.keywords {
			if strings.Contains(normalized, kw) {
				return fk.field, true
			}
		}
	}

	return "", false
}

// containsWord reports whether sub occurs in s as a whole word sequence.
func containsWord(s, sub string) bool {
	return strings.Contains(" "+s+" ", " "+sub+" ")
}

func sharesWord(a, b []string) bool {
	for _, wa := range a {
		for _, wb := range b {
			if wa == wb {
				return true
			}
		}
	}
	return false
}
