package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "500.00", "500"},
		{"negative", "-500.00", "-500"},
		{"thousands separators", "25,000.00", "25000"},
		{"indian grouping with rupee glyph", "₹1,25,000.50", "125000.5"},
		{"dollar", "$1,234.56", "1234.56"},
		{"euro", "€99.90", "99.9"},
		{"dr suffix", "5,000.00 Dr", "-5000"},
		{"cr suffix", "5,000.00 Cr", "5000"},
		{"lowercase dr", "250dr", "-250"},
		{"parenthesized negative", "(250.00)", "-250"},
		{"parenthesized with currency", "($1,250.00)", "-1250"},
		{"rs suffix", "1,000 Rs.", "1000"},
		{"bare integer", "42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"Salary",
		"N/A",
		"--",
		"()",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}
