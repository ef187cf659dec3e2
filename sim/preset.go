package sim

import (
	"fmt"
	"strings"
)

// DefaultDisruptedAirport seeds a preset run whose preset names no airports.
const DefaultDisruptedAirport = "JFK"

// Preset is a pre-configured scenario.
type Preset struct {
	ID          string        `yaml:"id" json:"id"`
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description" json:"description"`
	Airports    []string      `yaml:"airports" json:"airports"`
	Severity    SeverityLabel `yaml:"severity" json:"severity"`
	Duration    int           `yaml:"duration" json:"duration"` // minutes
}

var defaultPresets = []Preset{
	{
		ID:          "weather-hub",
		Title:       "Severe Weather at Major Hub",
		Description: "Simulate extreme weather disrupting a major airport",
		Airports:    []string{"JFK"},
		Severity:    SeveritySevere,
		Duration:    180,
	},
	{
		ID:          "multi-airport",
		Title:       "Multi-Airport Disruption",
		Description: "Regional weather affecting multiple airports",
		Airports:    []string{"JFK", "LGA", "EWR"},
		Severity:    SeverityModerate,
		Duration:    240,
	},
	{
		ID:          "holiday-rush",
		Title:       "Holiday Rush Congestion",
		Description: "High traffic volume during peak travel",
		Airports:    []string{"ATL", "ORD", "DFW", "DEN", "LAX"},
		Severity:    SeverityMild,
		Duration:    360,
	},
	{
		ID:          "cascading",
		Title:       "Cascading Delays Coast to Coast",
		Description: "Delays propagating across the network",
		Airports:    []string{"JFK", "ORD", "DEN", "SFO", "LAX"},
		Severity:    SeveritySevere,
		Duration:    480,
	},
}

// DefaultPresets returns a copy of the built-in presets.
func DefaultPresets() []Preset {
	out := make([]Preset, len(defaultPresets))
	for i, p := range defaultPresets {
		p.Airports = append([]string{}, p.Airports...)
		out[i] = p
	}
	return out
}

var validSeverityLabels = map[SeverityLabel]bool{
	SeverityMild: true, SeverityModerate: true, SeveritySevere: true,
}

// PresetRegistry is an ordered, immutable set of presets.
type PresetRegistry struct {
	presets []Preset
	byID    map[string]int
}

// NewPresetRegistry validates list and indexes it by id.
func NewPresetRegistry(list []Preset) (*PresetRegistry, error) {
	r := &PresetRegistry{byID: make(map[string]int, len(list))}
	for i, p := range list {
		prefix := fmt.Sprintf("preset[%d]", i)
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("%s: empty id", prefix)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate id %q", prefix, p.ID)
		}
		if !validSeverityLabels[p.Severity] {
			return nil, fmt.Errorf("%s: unknown severity %q; valid: mild, moderate, severe", prefix, p.Severity)
		}
		if p.Duration < 0 {
			return nil, fmt.Errorf("%s: duration must be non-negative, got %d", prefix, p.Duration)
		}
		p.Airports = append([]string{}, p.Airports...)
		r.byID[p.ID] = len(r.presets)
		r.presets = append(r.presets, p)
	}
	return r, nil
}

// DefaultPresetRegistry returns a registry over DefaultPresets.
func DefaultPresetRegistry() *PresetRegistry {
	r, err := NewPresetRegistry(defaultPresets)
	if err != nil {
		// defaultPresets has unique ids and valid severities.
		panic(err)
	}
	return r
}

// Lookup returns the preset with id.
func (r *PresetRegistry) Lookup(id string) (Preset, bool) {
	if r == nil {
		return Preset{}, false
	}
	idx, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return Preset{}, false
	}
	p := r.presets[idx]
	p.Airports = append([]string{}, p.Airports...)
	return p, true
}

// List returns all presets in registration order.
func (r *PresetRegistry) List() []Preset {
	if r == nil {
		return nil
	}
	out := make([]Preset, len(r.presets))
	for i, p := range r.presets {
		p.Airports = append([]string{}, p.Airports...)
		out[i] = p
	}
	return out
}
