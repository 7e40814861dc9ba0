// Package classifier maps free-text product descriptions from fuel-card
// exports onto the fixed set of fuel categories.
//
// Two match lists with different precision are involved: the coarse fuel
// gate decides whether a row is a fuel purchase at all (skip vs process),
// and the ordered rule table assigns the category. The lists differ on
// purpose: a product can pass the gate and still classify as "other".
package classifier

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/fuelimport/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Rule is one ordered classification rule: the first rule whose token is
// contained in the normalized product text wins.
type Rule struct {
	Category models.FuelType
	Tokens   []string
}

// Classifier holds the gate allow-list and the ordered rule table.
type Classifier struct {
	gate  []string
	rules []Rule
}

// New builds a classifier from explicit match lists. Tokens are normalized
// to lower case; rule order is preserved because it decides precedence for
// products carrying overlapping tokens.
func New(gate []string, rules []Rule) *Classifier {
	c := &Classifier{
		gate:  make([]string, 0, len(gate)),
		rules: make([]Rule, 0, len(rules)),
	}
	for _, token := range gate {
		c.gate = append(c.gate, normalize(token))
	}
	for _, rule := range rules {
		tokens := make([]string, 0, len(rule.Tokens))
		for _, token := range rule.Tokens {
			tokens = append(tokens, normalize(token))
		}
		c.rules = append(c.rules, Rule{Category: rule.Category, Tokens: tokens})
	}
	return c
}

// Default returns a classifier with the built-in gate and rule table.
func Default() *Classifier {
	return New(DefaultGate(), DefaultRules())
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsFuel is the coarse gate: true when the normalized product text contains
// any allow-listed substring. It runs before any other parsing so non-fuel
// rows are skipped cheaply.
func (c *Classifier) IsFuel(product string) bool {
	p := normalize(product)
	if p == "" {
		return false
	}
	for _, token := range c.gate {
		if strings.Contains(p, token) {
			return true
		}
	}
	return false
}

// Classify maps the product text onto a fuel category by evaluating the rule
// table in declared order, falling through to FuelOther. Unclassifiable text
// is never an error.
func (c *Classifier) Classify(product string) models.FuelType {
	p := normalize(product)
	for _, rule := range c.rules {
		for _, token := range rule.Tokens {
			if strings.Contains(p, token) {
				log.WithFields(logrus.Fields{
					"product":  product,
					"token":    token,
					"category": rule.Category,
				}).Debug("Product classified")
				return rule.Category
			}
		}
	}
	return models.FuelOther
}
