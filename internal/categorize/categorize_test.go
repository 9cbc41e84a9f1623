package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_Categorize(t *testing.T) {
	e := NewEngine(nil)

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"salary", "SALARY CREDIT MARCH", "income"},
		{"interest", "Interest Credit", "income"},
		{"shopping", "AMAZON MARKETPLACE", "shopping"},
		{"food", "Starbucks Coffee 1234", "food"},
		{"rideshare", "UBER TRIP HELP.UBER.COM", "transportation"},
		{"utility bill", "Electric Bill Payment", "utilities"},
		{"streaming", "NETFLIX.COM", "entertainment"},
		{"pharmacy", "City Pharmacy POS", "healthcare"},
		// "gas" belongs to both transportation and utilities; taxonomy
		// order decides.
		{"shared keyword", "Shell Gas Station", "transportation"},
		// "credit" (income) outranks "store" (shopping).
		{"priority across categories", "Store Credit Issued", "income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Categorize(tt.description)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_Categorize_NoMatch(t *testing.T) {
	e := NewEngine(nil)

	for _, description := range []string{"", "NEFT AXIS BANK 000123"} {
		t.Run(description, func(t *testing.T) {
			_, ok := e.Categorize(description)
			assert.False(t, ok)
		})
	}
}

func TestEngine_InjectedTaxonomy(t *testing.T) {
	e := NewEngine([]Category{
		{"rent", []string{"landlord"}},
		{"groceries", []string{"market"}},
	})

	got, ok := e.Categorize("Transfer to Landlord")
	assert.True(t, ok)
	assert.Equal(t, "rent", got)

	_, ok = e.Categorize("Salary")
	assert.False(t, ok)
}
