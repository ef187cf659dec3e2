package sim

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/airdelay-sim/airdelay-sim/sim/airport"
)

// ScenarioType distinguishes the two invocation shapes.
type ScenarioType string

const (
	ScenarioPreset ScenarioType = "preset"
	ScenarioCustom ScenarioType = "custom"
)

// DisruptionType names the cause of a custom disruption. It is carried with
// the run but does not change the interpolation targets.
type DisruptionType string

const (
	DisruptionWeather   DisruptionType = "weather"
	DisruptionTechnical DisruptionType = "technical"
	DisruptionClosure   DisruptionType = "closure"
	DisruptionATC       DisruptionType = "atc"
)

// SeverityLabel is the coarse severity of a scenario.
type SeverityLabel string

const (
	SeverityMild     SeverityLabel = "mild"
	SeverityModerate SeverityLabel = "moderate"
	SeveritySevere   SeverityLabel = "severe"
)

// LabelForScore maps a 0-100 custom severity to its label.
func LabelForScore(score int) SeverityLabel {
	switch {
	case score < 33:
		return SeverityMild
	case score < 66:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// Severity is either a preset label ("severe") or a custom 0-100 score.
// On the wire it is a JSON string or number respectively.
type Severity struct {
	Label SeverityLabel
	Score int
	// Scored is true when Score was supplied.
	Scored bool
}

// LabelSeverity wraps a preset label.
func LabelSeverity(l SeverityLabel) Severity { return Severity{Label: l} }

// ScoreSeverity wraps a custom score.
func ScoreSeverity(score int) Severity { return Severity{Score: score, Scored: true} }

// Level returns the label, deriving it from the score when needed.
func (s Severity) Level() SeverityLabel {
	if s.Scored {
		return LabelForScore(s.Score)
	}
	return s.Label
}

// IsZero reports whether no severity was given.
func (s Severity) IsZero() bool {
	return !s.Scored && s.Label == ""
}

func (s Severity) MarshalJSON() ([]byte, error) {
	if s.Scored {
		return json.Marshal(s.Score)
	}
	return json.Marshal(string(s.Label))
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Severity{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*s = LabelSeverity(SeverityLabel(label))
		return nil
	}
	var score float64
	if err := json.Unmarshal(data, &score); err != nil {
		return fmt.Errorf("severity must be a label or a number: %w", err)
	}
	*s = ScoreSeverity(int(score))
	return nil
}

// Scenario is the input accepted by Driver.RunScenario.
//
// Only Airports affects the driver: it seeds the run's disrupted set.
// Severity, Duration and DisruptionType are carried for reporting.
type Scenario struct {
	Type           ScenarioType   `json:"type"`
	ScenarioID     string         `json:"scenarioId,omitempty"`
	DisruptionType DisruptionType `json:"disruptionType,omitempty"`
	Airports       []string       `json:"airports"`
	Severity       Severity       `json:"severity"`
	Duration       int            `json:"duration"` // minutes
}

// PresetScenario builds a preset invocation from p.
func PresetScenario(p Preset) Scenario {
	return Scenario{
		Type:       ScenarioPreset,
		ScenarioID: p.ID,
		Airports:   append([]string{}, p.Airports...),
		Severity:   LabelSeverity(p.Severity),
		Duration:   p.Duration,
	}
}

// CustomScenario builds a custom invocation.
func CustomScenario(disruption DisruptionType, airports []string, severity, duration int) Scenario {
	return Scenario{
		Type:           ScenarioCustom,
		DisruptionType: disruption,
		Airports:       append([]string{}, airports...),
		Severity:       ScoreSeverity(severity),
		Duration:       duration,
	}
}

func (sc Scenario) clone() Scenario {
	out := sc
	out.Airports = append([]string{}, sc.Airports...)
	return out
}

// Resolve validates sc and fills in preset defaults, returning the scenario
// the driver will run.
//
// Presets take the registry's airports, severity and duration for any field
// left empty, and fall back to DefaultDisruptedAirport when the preset names
// no airports. Custom scenarios must select at least one airport. Airport
// codes are normalized, de-duplicated and, when catalog is non-nil, checked
// against it.
func (sc Scenario) Resolve(presets *PresetRegistry, catalog *airport.Catalog) (Scenario, error) {
	out := sc.clone()
	switch sc.Type {
	case ScenarioPreset:
		p, ok := presets.Lookup(sc.ScenarioID)
		if !ok {
			return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownPreset, sc.ScenarioID)
		}
		if len(out.Airports) == 0 {
			out.Airports = append([]string{}, p.Airports...)
		}
		if len(out.Airports) == 0 {
			out.Airports = []string{DefaultDisruptedAirport}
		}
		if out.Severity.IsZero() {
			out.Severity = LabelSeverity(p.Severity)
		}
		if out.Duration == 0 {
			out.Duration = p.Duration
		}
	case ScenarioCustom:
		if len(out.Airports) == 0 {
			return Scenario{}, ErrNoAirports
		}
		if out.DisruptionType == "" {
			out.DisruptionType = DisruptionWeather
		}
	default:
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenarioType, sc.Type)
	}

	codes, err := normalizeAirports(out.Airports, catalog)
	if err != nil {
		return Scenario{}, err
	}
	if len(codes) == 0 {
		return Scenario{}, ErrNoAirports
	}
	out.Airports = codes
	return out, nil
}

func normalizeAirports(in []string, catalog *airport.Catalog) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		code := airport.NormalizeCode(raw)
		if code == "" || seen[code] {
			continue
		}
		if catalog != nil && !catalog.Contains(code) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAirport, code)
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}
