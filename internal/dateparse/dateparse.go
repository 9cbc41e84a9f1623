// Package dateparse converts raw statement date tokens into calendar dates.
// Statements write dates a dozen different ways, so parsing tries an ordered
// list of explicit templates first and falls back to regex extraction for
// tokens embedded in surrounding text.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/statement-parser/internal/textutil"
)

// DefaultFormats returns the ordered template list tried before the regex
// fallbacks. Order matters: day-first templates come before month-first, so
// ambiguous tokens like "02/01/2024" resolve as 2 January.
func DefaultFormats() []string {
	return []string{
		"02/01/2006", "02/01/06", "01/02/2006", "01/02/06",
		"2006-01-02", "02-01-2006", "01-02-2006",
		"Jan 2, 2006", "January 2, 2006",
		"2 Jan 2006", "2 January 2006",
		"2-Jan-2006", "2-January-2006",
	}
}

// Fallback patterns tried, in order, when no explicit template matches.
// Group meaning varies per pattern and is resolved in Parse.
var fallbacks = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`), // D/M/Y
	regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`),   // Y/M/D
	regexp.MustCompile(`(\d{1,2})-([A-Za-z]{3})-(\d{4})`),     // D-Mon-Y
	regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]{3})\s+(\d{4})`), // D Mon Y
	regexp.MustCompile(`(\d{2})(\d{2})(\d{4})`),               // DDMMYYYY
}

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Parser parses raw date tokens using an injected template list.
type Parser struct {
	formats []string
}

// New creates a Parser. A nil or empty format list selects DefaultFormats.
func New(formats []string) *Parser {
	if len(formats) == 0 {
		formats = DefaultFormats()
	}
	return &Parser{formats: formats}
}

// Parse converts a raw token into a calendar date (UTC midnight). Callers
// must treat an error as "field absent", never as fatal: unparseable dates
// are an expected property of noisy statement rows.
func (p *Parser) Parse(raw string) (time.Time, error) {
	s := textutil.CollapseSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date token")
	}

	for _, layout := range p.formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	for i, re := range fallbacks {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if t, ok := resolveFallback(i, m); ok {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", raw)
}

// resolveFallback interprets the capture groups of fallback pattern idx.
func resolveFallback(idx int, m []string) (time.Time, bool) {
	switch idx {
	case 1: // Y/M/D
		year := atoi(m[1])
		month, ok := numericMonth(m[2])
		if !ok {
			return time.Time{}, false
		}
		return makeDate(year, month, atoi(m[3]))
	case 2, 3: // D-Mon-Y and D Mon Y
		month, ok := monthAbbrev[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		return makeDate(atoi(m[3]), month, atoi(m[1]))
	default: // D/M/Y and DDMMYYYY
		month, ok := numericMonth(m[2])
		if !ok {
			return time.Time{}, false
		}
		return makeDate(pivotYear(m[3]), month, atoi(m[1]))
	}
}

// pivotYear expands 2-digit years: values below 50 land in 20xx, the rest in
// 19xx. 4-digit years pass through.
func pivotYear(s string) int {
	year := atoi(s)
	if len(s) == 2 {
		if year < 50 {
			return year + 2000
		}
		return year + 1900
	}
	return year
}

func numericMonth(s string) (time.Month, bool) {
	n := atoi(s)
	if n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

// makeDate builds a validated calendar date; time.Date normalizes overflow
// (Feb 30 becomes Mar 2), which must be rejected here.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
