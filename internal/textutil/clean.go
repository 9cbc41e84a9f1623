// Package textutil provides the text normalization shared by every parsing
// component in the statement pipeline.
package textutil

import (
	"regexp"
	"strings"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)
	// Characters outside letters, digits, underscore, whitespace and -.,$()
	// interfere with header matching and amount parsing and are dropped.
	noiseChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,$()]`)
)

// CollapseSpace trims the input and collapses internal whitespace runs to a
// single space, leaving every other character alone. Raw cells keep their
// punctuation through acquisition; separators like "/" still carry meaning
// for date parsing.
func CollapseSpace(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Clean collapses whitespace and strips noise characters. The empty string is
// returned for empty input.
func Clean(s string) string {
	return noiseChars.ReplaceAllString(CollapseSpace(s), "")
}
