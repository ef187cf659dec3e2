// Derives the five delay metrics shown alongside a run. Each metric is a
// clamped linear function of elapsed simulated time.

package sim

import "math"

// Interpolation targets reached at or before Horizon.
const (
	MaxFlightsAffected    = 342
	MaxTotalDelayMinutes  = 18500
	MaxAirportsWithDelays = 8
	MaxEconomicImpact     = 2450000
	MinResilienceScore    = 15
	InitialResilience     = 100
)

// Metrics aggregates the delay figures of a run at one instant.
type Metrics struct {
	FlightsAffected    int   `json:"flights_affected"`
	TotalDelayMinutes  int   `json:"total_delay_minutes"`
	AirportsWithDelays int   `json:"airports_with_delays"`
	EconomicImpact     int64 `json:"economic_impact"` // USD
	ResilienceScore    int   `json:"resilience_score"`
}

// InitialMetrics is the metric tuple of a ready run.
func InitialMetrics() Metrics {
	return Metrics{ResilienceScore: InitialResilience}
}

// ComputeMetrics returns the metrics at elapsed simulated seconds.
// Delay, cost and flight counts are non-decreasing in elapsed; resilience is
// non-increasing.
//
// At Horizon the linear mappings land just short of some targets
// (60*308 = 18480); a completed run reports the capped metrics at their
// targets instead.
func ComputeMetrics(elapsed float64) Metrics {
	m := Metrics{
		FlightsAffected:    min(int(math.Floor(elapsed*5.7)), MaxFlightsAffected),
		TotalDelayMinutes:  min(int(math.Floor(elapsed*308)), MaxTotalDelayMinutes),
		AirportsWithDelays: min(int(math.Floor(elapsed/15)), MaxAirportsWithDelays),
		EconomicImpact:     min(int64(math.Floor(elapsed*40833)), MaxEconomicImpact),
		ResilienceScore:    max(InitialResilience-int(math.Floor(elapsed*1.5)), MinResilienceScore),
	}
	if elapsed >= Horizon {
		m = m.settle()
	}
	return m
}

// settle moves the capped metrics to their targets. AirportsWithDelays keeps
// its linear value.
func (m Metrics) settle() Metrics {
	m.FlightsAffected = MaxFlightsAffected
	m.TotalDelayMinutes = MaxTotalDelayMinutes
	m.EconomicImpact = MaxEconomicImpact
	m.ResilienceScore = MinResilienceScore
	return m
}

// ResilienceBand classifies a resilience score.
type ResilienceBand string

const (
	ResilienceGood     ResilienceBand = "good"
	ResilienceStrained ResilienceBand = "strained"
	ResilienceCritical ResilienceBand = "critical"
)

// Band returns the resilience band of the metrics.
func (m Metrics) Band() ResilienceBand {
	switch {
	case m.ResilienceScore >= 70:
		return ResilienceGood
	case m.ResilienceScore >= 40:
		return ResilienceStrained
	default:
		return ResilienceCritical
	}
}
