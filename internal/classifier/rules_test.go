package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fuelimport/internal/models"
)

const testRulesYAML = `
gate:
  - diesel
  - kerosene
rules:
  - category: diesel
    tokens: [diesel]
  - category: other
    tokens: [kerosene]
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRulesYAML), 0600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.True(t, c.IsFuel("Kerosene Jet A1"))
	assert.False(t, c.IsFuel("AdBlue")) // gate fully replaced
	assert.Equal(t, models.FuelDiesel, c.Classify("Diesel"))
	assert.Equal(t, models.FuelOther, c.Classify("Kerosene Jet A1"))
}

func TestLoadKeepsDefaultsForEmptySections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.True(t, c.IsFuel("Diesel"))
	assert.Equal(t, models.FuelPetrol, c.Classify("Super 95"))
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - category: rocket_fuel\n    tokens: [rp1]\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
