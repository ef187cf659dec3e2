package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdelay-sim/airdelay-sim/sim"
)

func TestLoadDefaultsConfig_RepoDefaultsMatchBuiltins(t *testing.T) {
	// Skip if defaults.yaml not available
	path := "defaults.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = "../defaults.yaml"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skip("defaults.yaml not found, skipping integration test")
		}
	}

	// GIVEN the shipped defaults file
	cfg, err := loadDefaultsConfig(path)
	require.NoError(t, err)

	// WHEN it is built
	catalog, presets, err := cfg.Build()
	require.NoError(t, err)

	// THEN it describes the same network and presets as the built-ins
	assert.Equal(t, 20, catalog.Len())
	assert.Equal(t, sim.DefaultPresets(), presets.List())
}

func TestParseDefaultsConfig_UnknownKeyFails(t *testing.T) {
	// GIVEN a typo in a preset field
	data := []byte(`
presets:
  - id: storm
    severty: severe
`)
	_, err := parseDefaultsConfig(data)
	assert.Error(t, err, "typos must not silently fall back to defaults")
}

func TestConfigBuild_EmptySectionsKeepBuiltins(t *testing.T) {
	catalog, presets, err := Config{Version: "1"}.Build()
	require.NoError(t, err)
	assert.Equal(t, 20, catalog.Len())
	assert.Len(t, presets.List(), 4)
}

func TestConfigBuild_PresetAirportMustBeInCatalog(t *testing.T) {
	// GIVEN a custom two-airport catalog and a preset naming a third
	cfg, err := parseDefaultsConfig([]byte(`
airports:
  - {code: AAA, lat: 0, lng: 0}
  - {code: BBB, lat: 0, lng: 10}
presets:
  - {id: p, airports: [AAA, CCC], severity: mild, duration: 60}
`))
	require.NoError(t, err)

	_, _, err = cfg.Build()
	assert.True(t, errors.Is(err, sim.ErrUnknownAirport), "err = %v", err)
}

func TestConfigBuild_InvalidSections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate airport", "airports:\n  - {code: AAA}\n  - {code: aaa}\n"},
		{"bad preset severity", "presets:\n  - {id: p, airports: [JFK], severity: extreme}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseDefaultsConfig([]byte(tt.yaml))
			require.NoError(t, err)
			_, _, err = cfg.Build()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvironment(t *testing.T) {
	// empty path uses the built-ins
	catalog, presets, err := loadEnvironment("")
	require.NoError(t, err)
	assert.True(t, catalog.Contains("JFK"))
	_, ok := presets.Lookup("cascading")
	assert.True(t, ok)

	// a missing file is an error, not a silent fallback
	_, _, err = loadEnvironment(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	// a file on disk is honoured
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - {id: solo, airports: [ORD], severity: mild}\n"), 0o644))
	_, presets, err = loadEnvironment(path)
	require.NoError(t, err)
	require.Len(t, presets.List(), 1)
	assert.Equal(t, "solo", presets.List()[0].ID)
}
