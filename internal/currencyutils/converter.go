package currencyutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fleetops/fuelimport/internal/models"
)

// RateProvider supplies multiplicative exchange rates into the settlement
// currency. Implementations may be static tables or live-rate services.
type RateProvider interface {
	Rate(currency string) (decimal.Decimal, bool)
}

// StaticRates is an in-memory rate table keyed by upper-case currency code.
type StaticRates map[string]decimal.Decimal

// Rate returns the rate for a currency code, if the table knows it.
func (r StaticRates) Rate(currency string) (decimal.Decimal, bool) {
	rate, ok := r[strings.ToUpper(currency)]
	return rate, ok
}

// DefaultRates returns the built-in rate table into EUR.
func DefaultRates() StaticRates {
	return StaticRates{
		"BGN": decimal.RequireFromString("0.51"),
		"CHF": decimal.RequireFromString("1.05"),
		"CZK": decimal.RequireFromString("0.04"),
		"DKK": decimal.RequireFromString("0.13"),
		"GBP": decimal.RequireFromString("1.17"),
		"HUF": decimal.RequireFromString("0.0026"),
		"NOK": decimal.RequireFromString("0.09"),
		"PLN": decimal.RequireFromString("0.22"),
		"RON": decimal.RequireFromString("0.20"),
		"SEK": decimal.RequireFromString("0.09"),
	}
}

// LoadRates reads a rate table from a YAML file of code: "rate" pairs.
// Rates are kept as strings in the file to avoid float drift.
func LoadRates(path string) (StaticRates, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- rate table path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("error reading rates file: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing rates file: %w", err)
	}
	rates := make(StaticRates, len(raw))
	for code, value := range raw {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		rates[strings.ToUpper(code)] = rate
	}
	log.WithField("count", len(rates)).Debug("Loaded exchange rates")
	return rates, nil
}

// Converter converts amounts into the settlement currency.
type Converter struct {
	settlement string
	rates      RateProvider
}

// NewConverter builds a converter for the given settlement currency. Nil
// rates fall back to the built-in table; an empty settlement currency falls
// back to the fixed default.
func NewConverter(settlement string, rates RateProvider) *Converter {
	if settlement == "" {
		settlement = models.SettlementCurrency
	}
	if rates == nil {
		rates = DefaultRates()
	}
	return &Converter{settlement: strings.ToUpper(settlement), rates: rates}
}

// Settlement returns the settlement currency code.
func (c *Converter) Settlement() string {
	return c.settlement
}

// Convert expresses amount in the settlement currency, rounded to two
// decimals. Amounts already in the settlement currency are returned as-is.
// Unknown currency codes pass through unconverted; that inherited tolerance
// is surfaced as a warning instead of an error.
func (c *Converter) Convert(amount decimal.Decimal, currency string) decimal.Decimal {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || code == c.settlement {
		return amount
	}
	rate, ok := c.rates.Rate(code)
	if !ok {
		log.WithField("currency", code).Warn("No exchange rate for currency, amount left unconverted")
		return amount
	}
	return amount.Mul(rate).Round(2)
}
