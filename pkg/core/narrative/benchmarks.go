package narrative

import (
	"fmt"
	"log"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// BenchmarkSet holds the industry-average values the ratio analysis compares
// against. Percent kinds (ROA, ROE, profit margin) are in percent, the rest
// are plain multiples.
type BenchmarkSet struct {
	ROA          float64 `yaml:"roa"`
	ROE          float64 `yaml:"roe"`
	ProfitMargin float64 `yaml:"profit_margin"`
	CurrentRatio float64 `yaml:"current_ratio"`
	DebtRatio    float64 `yaml:"debt_ratio"`
}

// defaultBenchmarks covers the industries DART filers commonly belong to.
// "default" is used for anything unlisted.
var defaultBenchmarks = map[string]BenchmarkSet{
	"manufacturing": {ROA: 5.0, ROE: 10.0, ProfitMargin: 5.0, CurrentRatio: 1.5, DebtRatio: 0.5},
	"technology":    {ROA: 8.0, ROE: 15.0, ProfitMargin: 10.0, CurrentRatio: 2.0, DebtRatio: 0.3},
	"finance":       {ROA: 1.0, ROE: 8.0, ProfitMargin: 15.0, CurrentRatio: 1.2, DebtRatio: 0.8},
	"retail":        {ROA: 4.0, ROE: 12.0, ProfitMargin: 3.0, CurrentRatio: 1.3, DebtRatio: 0.4},
	"default":       {ROA: 5.0, ROE: 10.0, ProfitMargin: 5.0, CurrentRatio: 1.5, DebtRatio: 0.5},
}

// Benchmarks resolves industry benchmark sets, optionally overridden from a
// yaml file.
type Benchmarks struct {
	sets map[string]BenchmarkSet
}

// DefaultBenchmarks returns the built-in table.
func DefaultBenchmarks() *Benchmarks {
	sets := make(map[string]BenchmarkSet, len(defaultBenchmarks))
	for k, v := range defaultBenchmarks {
		sets[k] = v
	}
	return &Benchmarks{sets: sets}
}

// LoadBenchmarks reads industry→benchmark overrides from a yaml file and
// merges them over the built-in table.
func LoadBenchmarks(path string) (*Benchmarks, error) {
	b := DefaultBenchmarks()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark file: %w", err)
	}
	var overrides map[string]BenchmarkSet
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark file: %w", err)
	}
	for industry, set := range overrides {
		b.sets[industry] = set
	}
	log.Printf("[Benchmarks] loaded %d industry overrides from %s", len(overrides), path)
	return b, nil
}

// For returns the benchmark set for an industry, falling back to "default".
func (b *Benchmarks) For(industry string) BenchmarkSet {
	if set, ok := b.sets[industry]; ok {
		return set
	}
	return b.sets["default"]
}
