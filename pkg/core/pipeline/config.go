package pipeline

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"dart_analysis/pkg/core/validate"
)

// Config drives one pipeline run. Zero value is usable; LoadConfig merges a
// yaml file over the defaults.
type Config struct {
	// Provider selects the narrative backend from the registry
	// ("gemini", "gemini-grounded"). Empty runs offline on the template
	// fallbacks.
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`

	// BenchmarkFile optionally overrides the built-in industry benchmarks.
	BenchmarkFile string `yaml:"benchmark_file"`

	// DefaultIndustry is used when a run does not name one.
	DefaultIndustry string `yaml:"default_industry"`

	Validation ValidationConfig `yaml:"validation"`

	// SaveResults persists the statement and ratios through the store
	// package. Requires DATABASE_URL.
	SaveResults bool `yaml:"save_results"`
}

// ValidationConfig tunes the stage gates.
type ValidationConfig struct {
	// EnableStrictValidation promotes gate warnings to pipeline errors.
	// Fatal gate failures stop the pipeline either way.
	EnableStrictValidation bool `yaml:"strict"`

	// BalanceTolerance is the accepted accounting-equation mismatch as a
	// fraction of total assets.
	BalanceTolerance float64 `yaml:"balance_tolerance"`
}

// DefaultConfig returns the offline defaults: no provider, no persistence,
// lenient validation.
func DefaultConfig() Config {
	return Config{
		DefaultIndustry: "default",
		Validation: ValidationConfig{
			EnableStrictValidation: false,
			BalanceTolerance:       validate.DefaultBalanceTolerance,
		},
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Validation.BalanceTolerance <= 0 {
		cfg.Validation.BalanceTolerance = validate.DefaultBalanceTolerance
	}
	if cfg.DefaultIndustry == "" {
		cfg.DefaultIndustry = "default"
	}
	return cfg, nil
}
