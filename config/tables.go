// Package config holds the engine's static signal and weight tables. Tables
// are loaded once at startup and never mutated afterwards; a YAML file can
// override the compiled-in defaults for tuning without a rebuild.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GazetteerEntry is a closed-list city the extractor recognizes without an
// explicit "City, ST" pattern.
type GazetteerEntry struct {
	City  string `yaml:"city"`
	State string `yaml:"state"`
}

// Tables bundles every tunable signal list and weight the engine uses.
type Tables struct {
	// TriggerKeywords are direct negotiation phrases; any one firing
	// triggers assistance on its own.
	TriggerKeywords []string `yaml:"trigger_keywords"`

	// DirectionalWords mark the desired direction of a rent change.
	DirectionalWords []string `yaml:"directional_words"`

	// TargetPhrases anchor a concrete asking target ("down to", ...).
	TargetPhrases []string `yaml:"target_phrases"`

	// RentWords are the rent-context tokens required by the compound and
	// rent-adjustment signal families.
	RentWords []string `yaml:"rent_words"`

	// Gazetteer maps lowercase city names to their canonical form.
	Gazetteer map[string]GazetteerEntry `yaml:"gazetteer"`

	// ProviderWeights are static base weights per provider ID, reflecting
	// typical reliability. Government benchmarks outrank scraped listings.
	ProviderWeights map[string]float64 `yaml:"provider_weights"`

	// SuccessWeights weight the four success-breakdown components into the
	// overall estimate. Must sum to 1.
	SuccessWeights SuccessWeights `yaml:"success_weights"`
}

type SuccessWeights struct {
	Market       float64 `yaml:"market"`
	Relationship float64 `yaml:"relationship"`
	Timing       float64 `yaml:"timing"`
	Alignment    float64 `yaml:"alignment"`
}

// DefaultTables returns the compiled-in tables.
func DefaultTables() Tables {
	return Tables{
		TriggerKeywords: []string{
			"negotiate my rent",
			"negotiate rent",
			"rent negotiation",
			"lower my rent",
			"reduce my rent",
			"lower the rent",
			"reduce the rent",
			"rent is too high",
			"rent too high",
			"pay less rent",
			"rent reduction",
			"talk to my landlord about rent",
		},
		DirectionalWords: []string{
			"down", "lower", "reduce", "decrease", "less", "cheaper", "cut",
		},
		TargetPhrases: []string{
			"down to", "get it down", "bring it down", "knock it down",
			"reduce to", "reduce it to", "want it at", "drop it to",
		},
		RentWords: []string{"rent", "lease", "rental"},
		Gazetteer: map[string]GazetteerEntry{
			"new york":      {City: "New York", State: "NY"},
			"buffalo":       {City: "Buffalo", State: "NY"},
			"los angeles":   {City: "Los Angeles", State: "CA"},
			"san francisco": {City: "San Francisco", State: "CA"},
			"san diego":     {City: "San Diego", State: "CA"},
			"chicago":       {City: "Chicago", State: "IL"},
			"houston":       {City: "Houston", State: "TX"},
			"austin":        {City: "Austin", State: "TX"},
			"dallas":        {City: "Dallas", State: "TX"},
			"phoenix":       {City: "Phoenix", State: "AZ"},
			"philadelphia":  {City: "Philadelphia", State: "PA"},
			"seattle":       {City: "Seattle", State: "WA"},
			"denver":        {City: "Denver", State: "CO"},
			"boston":        {City: "Boston", State: "MA"},
			"atlanta":       {City: "Atlanta", State: "GA"},
			"miami":         {City: "Miami", State: "FL"},
			"portland":      {City: "Portland", State: "OR"},
			"minneapolis":   {City: "Minneapolis", State: "MN"},
			"nashville":     {City: "Nashville", State: "TN"},
			"washington":    {City: "Washington", State: "DC"},
		},
		ProviderWeights: map[string]float64{
			"gov-rent-index":        1.0,
			"commercial-rent-index": 0.8,
			"comparable-listings":   0.6,
		},
		SuccessWeights: SuccessWeights{
			Market:       0.35,
			Relationship: 0.25,
			Timing:       0.20,
			Alignment:    0.20,
		},
	}
}

// Validate rejects tables a running engine cannot work with.
func (t Tables) Validate() error {
	if len(t.TriggerKeywords) == 0 {
		return fmt.Errorf("config: trigger_keywords is empty")
	}
	if len(t.RentWords) == 0 {
		return fmt.Errorf("config: rent_words is empty")
	}
	if len(t.ProviderWeights) == 0 {
		return fmt.Errorf("config: provider_weights is empty")
	}
	for id, w := range t.ProviderWeights {
		if w <= 0 {
			return fmt.Errorf("config: provider %q has non-positive weight %v", id, w)
		}
	}
	sum := t.SuccessWeights.Market + t.SuccessWeights.Relationship +
		t.SuccessWeights.Timing + t.SuccessWeights.Alignment
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("config: success_weights sum to %v, want 1", sum)
	}
	return nil
}

// LoadTables returns the defaults, overridden by the YAML file at path when
// one is given. Fields absent from the file keep their default values.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return Tables{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, err
	}
	return tables, nil
}
