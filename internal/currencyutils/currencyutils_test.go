package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Comma decimal separator", "61,50", "61.5"},
		{"Space thousand separator", "1 234,56", "1234.56"},
		{"Plain decimal point", "12.34", "12.34"},
		{"Integer", "50", "50"},
		{"Negative", "-7,5", "-7.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected := decimal.RequireFromString(tc.expected)
			assert.True(t, ParseDecimal(tc.input).Equal(expected),
				"ParseDecimal(%q) = %s, want %s", tc.input, ParseDecimal(tc.input), expected)
		})
	}
}

func TestParseDecimalDegradesToZero(t *testing.T) {
	// Unparseable numeric text parses to zero, never errors.
	assert.True(t, ParseDecimal("n/a").IsZero())
	assert.True(t, ParseDecimal("").IsZero())
	assert.True(t, ParseDecimal("12,34,56").IsZero())
}
