package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialMetrics(t *testing.T) {
	assert.Equal(t, Metrics{ResilienceScore: 100}, InitialMetrics())
	assert.Equal(t, InitialMetrics(), ComputeMetrics(0))
}

func TestComputeMetrics_TenSeconds(t *testing.T) {
	// GIVEN 10 simulated seconds
	m := ComputeMetrics(10)

	// THEN each metric follows its linear mapping
	assert.Equal(t, Metrics{
		FlightsAffected:    57,
		TotalDelayMinutes:  3080,
		AirportsWithDelays: 0,
		EconomicImpact:     408330,
		ResilienceScore:    85,
	}, m)
}

func TestComputeMetrics_Horizon_ClampsToTargets(t *testing.T) {
	m := ComputeMetrics(Horizon)

	assert.Equal(t, MaxFlightsAffected, m.FlightsAffected)
	assert.Equal(t, MaxTotalDelayMinutes, m.TotalDelayMinutes)
	assert.Equal(t, 4, m.AirportsWithDelays)
	assert.Equal(t, int64(MaxEconomicImpact), m.EconomicImpact)
	assert.Equal(t, MinResilienceScore, m.ResilienceScore)
}

func TestComputeMetrics_MonotoneAndBounded(t *testing.T) {
	// GIVEN every half second in [0, 60]
	prev := ComputeMetrics(0)
	for step := 1; step <= 120; step++ {
		elapsed := float64(step) / 2
		m := ComputeMetrics(elapsed)

		// THEN delay/cost/flight metrics never decrease and resilience never increases
		if m.FlightsAffected < prev.FlightsAffected {
			t.Errorf("flightsAffected decreased at %v: %d < %d", elapsed, m.FlightsAffected, prev.FlightsAffected)
		}
		if m.TotalDelayMinutes < prev.TotalDelayMinutes {
			t.Errorf("totalDelayMinutes decreased at %v", elapsed)
		}
		if m.AirportsWithDelays < prev.AirportsWithDelays {
			t.Errorf("airportsWithDelays decreased at %v", elapsed)
		}
		if m.EconomicImpact < prev.EconomicImpact {
			t.Errorf("economicImpact decreased at %v", elapsed)
		}
		if m.ResilienceScore > prev.ResilienceScore {
			t.Errorf("resilienceScore increased at %v", elapsed)
		}

		// AND stay within their targets
		if m.FlightsAffected > MaxFlightsAffected {
			t.Errorf("flightsAffected %d above %d at %v", m.FlightsAffected, MaxFlightsAffected, elapsed)
		}
		if m.ResilienceScore < MinResilienceScore {
			t.Errorf("resilienceScore %d below %d at %v", m.ResilienceScore, MinResilienceScore, elapsed)
		}
		prev = m
	}
}

func TestMetrics_Band(t *testing.T) {
	tests := []struct {
		score int
		want  ResilienceBand
	}{
		{100, ResilienceGood},
		{70, ResilienceGood},
		{69, ResilienceStrained},
		{40, ResilienceStrained},
		{39, ResilienceCritical},
		{15, ResilienceCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Metrics{ResilienceScore: tt.score}.Band(), "score %d", tt.score)
	}
}

func TestComputeMetrics_LinearUntilHorizon(t *testing.T) {
	// GIVEN the last half-second before the horizon
	m := ComputeMetrics(59.5)

	// THEN the linear values are reported, below the targets
	assert.Equal(t, 18326, m.TotalDelayMinutes)
	assert.Equal(t, int64(2429563), m.EconomicImpact)
	assert.Equal(t, 339, m.FlightsAffected)
	assert.Equal(t, MinResilienceScore, m.ResilienceScore)

	// AND past the horizon nothing moves further
	assert.Equal(t, ComputeMetrics(Horizon), ComputeMetrics(Horizon+30))
}
