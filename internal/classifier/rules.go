package classifier

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/fleetops/fuelimport/internal/models"
)

// DefaultGate returns the built-in fuel-gate allow-list. It is deliberately
// narrower than the rule table: it only names products known to be fuel.
func DefaultGate() []string {
	return []string{
		"diesel",
		"adblue",
		"super 98",
		"cng",
		"super 95",
		"fuel",
	}
}

// DefaultRules returns the built-in ordered rule table. Tokens cover the
// provider-specific product-name variants seen across country exports.
// Order matters: a product containing both a diesel and a petrol token
// resolves to diesel because that rule is evaluated first.
func DefaultRules() []Rule {
	return []Rule{
		{Category: models.FuelDiesel, Tokens: []string{
			"diesel", "motorin", "gasoil", "gazole", "derv", "b7",
		}},
		{Category: models.FuelPetrol, Tokens: []string{
			"benzin", "petrol", "gasoline", "super 95", "super 98", "e5", "e10", "95", "98",
		}},
		{Category: models.FuelLPG, Tokens: []string{
			"lpg", "autogas", "gpl",
		}},
		{Category: models.FuelAdBlue, Tokens: []string{
			"adblue", "def", "urea",
		}},
		{Category: models.FuelCNG, Tokens: []string{
			"cng", "erdgas", "methane",
		}},
		{Category: models.FuelElectric, Tokens: []string{
			"electric", "charging", "kwh",
		}},
	}
}

// rulesFile is the YAML shape for overriding the built-in match lists.
type rulesFile struct {
	Gate  []string `yaml:"gate"`
	Rules []struct {
		Category string   `yaml:"category"`
		Tokens   []string `yaml:"tokens"`
	} `yaml:"rules"`
}

// Load builds a classifier from a YAML rules file. Sections left empty in
// the file keep their built-in defaults.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- rules path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}

	gate := file.Gate
	if len(gate) == 0 {
		gate = DefaultGate()
	}

	rules := DefaultRules()
	if len(file.Rules) > 0 {
		rules = make([]Rule, 0, len(file.Rules))
		valid := make(map[models.FuelType]bool)
		for _, ft := range models.FuelTypes() {
			valid[ft] = true
		}
		for _, r := range file.Rules {
			category := models.FuelType(r.Category)
			if !valid[category] {
				return nil, fmt.Errorf("unknown fuel category %q in rules file", r.Category)
			}
			rules = append(rules, Rule{Category: category, Tokens: r.Tokens})
		}
	}

	log.WithFields(logrus.Fields{
		"gate_tokens": len(gate),
		"rules":       len(rules),
	}).Debug("Loaded classification rules")
	return New(gate, rules), nil
}
