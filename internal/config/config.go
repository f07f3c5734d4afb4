// Package config loads scenario configuration for a rollout: PRNG seed, an
// optional horizon override, whether to enforce action preconditions, and
// which fuzzy-logic variant a differentiable rollout should compile through
// ([FULL] Configuration).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FuzzyVariant names one of the two algebras internal/fuzzy implements.
type FuzzyVariant string

const (
	FuzzyProduct FuzzyVariant = "product"
	FuzzyMinMax  FuzzyVariant = "minmax"
)

// Scenario is the top-level scenario.yml document.
type Scenario struct {
	Seed                     uint64       `yaml:"seed"`
	HorizonOverride          *int         `yaml:"horizon_override"`
	EnforceActionConstraints bool         `yaml:"enforce_action_constraints"`
	FuzzyLogic               FuzzyVariant `yaml:"fuzzy_logic"`
}

// Load reads and parses a scenario YAML document at path, following
// internal/eval_harness/models.go's LoadModelsConfig pattern: read the file,
// yaml.Unmarshal into a typed struct, wrap read/parse errors with %w.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Scenario with the conservative defaults a scenario.yml
// may omit fields against: seed 0, no horizon override, constraints
// enforced, product-logic relaxation.
func Default() *Scenario {
	return &Scenario{
		Seed:                     0,
		HorizonOverride:          nil,
		EnforceActionConstraints: true,
		FuzzyLogic:               FuzzyProduct,
	}
}

// Validate rejects a fuzzy_logic value that isn't one of the two variants
// internal/fuzzy implements, and a negative horizon override.
func (c *Scenario) Validate() error {
	switch c.FuzzyLogic {
	case FuzzyProduct, FuzzyMinMax, "":
	default:
		return fmt.Errorf("unknown fuzzy_logic variant %q: want %q or %q", c.FuzzyLogic, FuzzyProduct, FuzzyMinMax)
	}
	if c.HorizonOverride != nil && *c.HorizonOverride < 0 {
		return fmt.Errorf("horizon_override must be non-negative, got %d", *c.HorizonOverride)
	}
	return nil
}

// ResolveHorizon returns the override when set, else modelHorizon.
func (c *Scenario) ResolveHorizon(modelHorizon int) int {
	if c.HorizonOverride != nil {
		return *c.HorizonOverride
	}
	return modelHorizon
}
