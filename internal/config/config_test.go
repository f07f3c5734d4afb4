package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadParsesFullScenario(t *testing.T) {
	path := writeScenario(t, `
seed: 42
horizon_override: 50
enforce_action_constraints: false
fuzzy_logic: minmax
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)
	require.NotNil(t, cfg.HorizonOverride)
	assert.Equal(t, 50, *cfg.HorizonOverride)
	assert.False(t, cfg.EnforceActionConstraints)
	assert.Equal(t, FuzzyMinMax, cfg.FuzzyLogic)
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	path := writeScenario(t, `seed: 7`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Nil(t, cfg.HorizonOverride)
	assert.True(t, cfg.EnforceActionConstraints)
}

func TestLoadMissingFileWrapsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestLoadRejectsUnknownFuzzyVariant(t *testing.T) {
	path := writeScenario(t, `fuzzy_logic: bogus`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsNegativeHorizonOverride(t *testing.T) {
	path := writeScenario(t, `horizon_override: -1`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestResolveHorizonPrefersOverride(t *testing.T) {
	n := 99
	cfg := &Scenario{HorizonOverride: &n}
	assert.Equal(t, 99, cfg.ResolveHorizon(10))

	cfg2 := &Scenario{}
	assert.Equal(t, 10, cfg2.ResolveHorizon(10))
}
