// Package currencyutils provides locale-aware decimal parsing and conversion
// of source-currency amounts into the fixed settlement currency.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDecimal parses a European-formatted number: whitespace (thousand
// separators) is stripped and the decimal comma swapped for a period.
// Input that still fails to parse degrades to zero instead of erroring;
// fuel-card exports carry placeholder text in numeric columns.
func ParseDecimal(s string) decimal.Decimal {
	s = whitespace.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		if s != "" {
			log.WithField("value", s).Warn("Unparseable numeric value, using zero")
		}
		return decimal.Zero
	}
	return d
}
