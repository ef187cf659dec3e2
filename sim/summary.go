package sim

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Summary is surfaced once, when a run reaches the horizon.
type Summary struct {
	RunID                 string          `json:"run_id"`
	Scenario              *Scenario       `json:"scenario,omitempty"`
	TotalSimulatedSeconds float64         `json:"total_simulated_seconds"`
	FlightsAffected       int             `json:"flights_affected"`
	TotalDelayMinutes     int             `json:"total_delay_minutes"`
	AirportsWithDelays    int             `json:"airports_with_delays"`
	EconomicImpact        decimal.Decimal `json:"economic_impact"` // USD
	ResilienceScore       int             `json:"resilience_score"`
	ResilienceBand        ResilienceBand  `json:"resilience_band"`
	PeakDelayMinutes      float64         `json:"peak_delay_minutes"`
	MostAffected          string          `json:"most_affected"`
	SamplesCollected      int             `json:"samples_collected"`
	Insights              []string        `json:"insights"`
}

var million = decimal.NewFromInt(1_000_000)

// NewSummary builds the completion summary of run from its final metrics and
// chart samples. Peak delay and the most affected airport come from the
// samples; with no samples the first disrupted airport is reported.
func NewSummary(run Run, m Metrics, samples []ChartSample) Summary {
	s := Summary{
		RunID:                 run.ID,
		TotalSimulatedSeconds: run.Elapsed,
		FlightsAffected:       m.FlightsAffected,
		TotalDelayMinutes:     m.TotalDelayMinutes,
		AirportsWithDelays:    m.AirportsWithDelays,
		EconomicImpact:        decimal.NewFromInt(m.EconomicImpact),
		ResilienceScore:       m.ResilienceScore,
		ResilienceBand:        m.Band(),
		SamplesCollected:      len(samples),
	}
	if run.Scenario != nil {
		sc := run.Scenario.clone()
		s.Scenario = &sc
	}

	for _, sample := range samples {
		// ChartAirports order keeps ties deterministic.
		for _, code := range ChartAirports() {
			if v := sample.DelayByAirport[code]; v > s.PeakDelayMinutes {
				s.PeakDelayMinutes = v
				s.MostAffected = code
			}
		}
	}
	if s.MostAffected == "" && len(run.DisruptedAirports) > 0 {
		s.MostAffected = run.DisruptedAirports[0]
	}

	s.Insights = s.insights()
	return s
}

// EconomicImpactMillions renders the economic impact as "$2.45M".
func (s Summary) EconomicImpactMillions() string {
	return "$" + s.EconomicImpact.Div(million).StringFixed(2) + "M"
}

func (s Summary) insights() []string {
	out := []string{
		fmt.Sprintf("Cascading delays reached %d airports, %d flights affected", s.AirportsWithDelays, s.FlightsAffected),
	}
	if s.MostAffected != "" {
		if s.PeakDelayMinutes > 0 {
			out = append(out, fmt.Sprintf("Peak impact at %s with %.0f min average delay", s.MostAffected, s.PeakDelayMinutes))
		} else {
			out = append(out, fmt.Sprintf("Disruption centred on %s", s.MostAffected))
		}
	}
	out = append(out, fmt.Sprintf("Network resilience fell to %d (%s), estimated cost %s",
		s.ResilienceScore, s.ResilienceBand, s.EconomicImpactMillions()))
	if s.Scenario != nil && s.Scenario.Duration > 0 {
		out = append(out, fmt.Sprintf("Disruption window: %.1f hours", float64(s.Scenario.Duration)/60))
	}
	return out
}

// Print writes the summary as indented JSON under a header.
func (s Summary) Print(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if _, err := fmt.Fprintf(w, "=== Simulation Summary ===\n%s\n", data); err != nil {
		return err
	}
	return nil
}
