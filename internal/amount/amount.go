// Package amount parses raw monetary tokens from bank statements into signed
// decimals. Tokens arrive with currency glyphs, thousands separators, Dr/Cr
// suffixes and parenthesized negatives, in any combination.
package amount

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

var (
	drToken       = regexp.MustCompile(`(?i)\s*dr\s*`)
	crToken       = regexp.MustCompile(`(?i)\s*cr\s*`)
	currencyChars = regexp.MustCompile(`[$€£¥₹,]`)
	nonNumeric    = regexp.MustCompile(`[^\d.\-]`)
)

// Parse converts a raw token into a signed decimal amount. Negative means
// money leaving the account. An error marks the field absent; callers never
// treat it as fatal.
//
// Sign markers accumulate: a Dr suffix or wrapping parentheses each mark the
// amount negative. Conflicting markers in one token (e.g. Dr plus
// parentheses) are unspecified input and resolve to a single negative flag.
func Parse(raw string) (decimal.Decimal, error) {
	s := textutil.Clean(raw)

	negative := false
	lower := strings.ToLower(s)
	if strings.Contains(lower, "dr") {
		negative = true
		s = drToken.ReplaceAllString(s, "")
	} else if strings.Contains(lower, "cr") {
		s = crToken.ReplaceAllString(s, "")
	}

	s = currencyChars.ReplaceAllString(s, "")

	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		negative = true
		s = strings.ReplaceAll(s, "(", "")
		s = strings.ReplaceAll(s, ")", "")
	}

	s = nonNumeric.ReplaceAllString(s, "")
	// "1,000 Rs." style suffixes leave a dangling decimal point behind.
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount: %q", raw)
	}
	if negative {
		return d.Neg(), nil
	}
	return d, nil
}
