// Package categorize assigns a coarse spending category to transaction
// descriptions. All keywords across the taxonomy are compiled into a single
// Aho-Corasick matcher, so one pass over the description finds every hit
// regardless of taxonomy size.
package categorize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Category pairs a tag with its lowercase keyword substrings. Taxonomy order
// is significant: the earliest category with a keyword hit wins.
type Category struct {
	Name     string
	Keywords []string
}

// DefaultTaxonomy returns the fixed category taxonomy in priority order.
func DefaultTaxonomy() []Category {
	return []Category{
		{"income", []string{
			"salary", "deposit", "transfer in", "refund", "interest",
			"dividend", "payment received", "credit",
		}},
		{"shopping", []string{
			"walmart", "target", "amazon", "ebay", "online purchase",
			"retail", "store", "shop", "mall",
		}},
		{"food", []string{
			"restaurant", "mcdonalds", "starbucks", "pizza", "food",
			"dining", "cafe", "coffee", "grocery",
		}},
		{"transportation", []string{
			"uber", "lyft", "taxi", "gas", "fuel", "parking",
			"toll", "public transport", "metro", "bus",
		}},
		{"utilities", []string{
			"electric", "water", "gas", "internet", "phone",
			"utility", "bill", "service",
		}},
		{"entertainment", []string{
			"netflix", "spotify", "movie", "theater", "concert",
			"game", "entertainment", "streaming",
		}},
		{"healthcare", []string{
			"pharmacy", "doctor", "hospital", "medical", "health",
			"dental", "vision", "insurance",
		}},
	}
}

// Engine matches descriptions against an injected taxonomy.
type Engine struct {
	matcher *ahocorasick.Matcher
	// owners[i] holds the taxonomy indexes claiming pattern i; a keyword like
	// "gas" appears in more than one category and the earliest index wins.
	owners [][]int
	names  []string
}

// NewEngine builds the keyword matcher for a taxonomy. A nil taxonomy
// selects DefaultTaxonomy.
func NewEngine(taxonomy []Category) *Engine {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}

	e := &Engine{names: make([]string, len(taxonomy))}

	patternIndex := make(map[string]int)
	var patterns [][]byte
	for ci, cat := range taxonomy {
		e.names[ci] = cat.Name
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			idx, seen := patternIndex[kw]
			if !seen {
				idx = len(patterns)
				patternIndex[kw] = idx
				patterns = append(patterns, []byte(kw))
				e.owners = append(e.owners, nil)
			}
			e.owners[idx] = append(e.owners[idx], ci)
		}
	}

	if len(patterns) > 0 {
		e.matcher = ahocorasick.NewMatcher(patterns)
	}
	return e
}

// Categorize returns the first category, in taxonomy order, whose keyword
// set has a case-insensitive substring hit in the description.
func (e *Engine) Categorize(description string) (string, bool) {
	if e.matcher == nil || description == "" {
		return "", false
	}

	hits := e.matcher.Match([]byte(strings.ToLower(description)))
	best := -1
	for _, idx := range hits {
		for _, ci := range e.owners[idx] {
			if best == -1 || ci < best {
				best = ci
			}
		}
	}
	if best == -1 {
		return "", false
	}
	return e.names[best], true
}
