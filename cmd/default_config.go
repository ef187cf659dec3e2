package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/airdelay-sim/airdelay-sim/sim"
	"github.com/airdelay-sim/airdelay-sim/sim/airport"
)

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version  string            `yaml:"version"`
	Airports []airport.Airport `yaml:"airports"`
	Presets  []sim.Preset      `yaml:"presets"`
}

// loadDefaultsConfig parses a defaults YAML file into a Config struct.
// Unknown keys are errors, so typos do not silently fall back to defaults.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read defaults file: %w", err)
	}
	return parseDefaultsConfig(data)
}

func parseDefaultsConfig(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse defaults YAML: %w", err)
	}
	return cfg, nil
}

// Build returns the catalog and preset registry described by cfg. An empty
// section keeps the built-in list. Every preset airport must exist in the
// resulting catalog.
func (cfg Config) Build() (*airport.Catalog, *sim.PresetRegistry, error) {
	catalog := airport.DefaultCatalog()
	if len(cfg.Airports) > 0 {
		c, err := airport.NewCatalog(cfg.Airports)
		if err != nil {
			return nil, nil, fmt.Errorf("airports: %w", err)
		}
		catalog = c
	}

	presets := sim.DefaultPresetRegistry()
	if len(cfg.Presets) > 0 {
		r, err := sim.NewPresetRegistry(cfg.Presets)
		if err != nil {
			return nil, nil, fmt.Errorf("presets: %w", err)
		}
		presets = r
	}

	for _, p := range presets.List() {
		for _, code := range p.Airports {
			if !catalog.Contains(code) {
				return nil, nil, fmt.Errorf("preset %q: %w: %q", p.ID, sim.ErrUnknownAirport, code)
			}
		}
	}
	return catalog, presets, nil
}

// loadEnvironment resolves the catalog and presets for the --defaults path.
func loadEnvironment(path string) (*airport.Catalog, *sim.PresetRegistry, error) {
	if path == "" {
		return airport.DefaultCatalog(), sim.DefaultPresetRegistry(), nil
	}
	cfg, err := loadDefaultsConfig(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg.Build()
}
