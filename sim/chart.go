package sim

import (
	"math"
	"math/rand"
)

// ChartSample is a decorative snapshot of per-airport delay (minutes) at a
// simulated time. Values are random and unrelated to Metrics.
type ChartSample struct {
	Time           int                `json:"time"` // simulated seconds
	DelayByAirport map[string]float64 `json:"delay_by_airport"`
}

func (c ChartSample) clone() ChartSample {
	out := ChartSample{Time: c.Time, DelayByAirport: make(map[string]float64, len(c.DelayByAirport))}
	for k, v := range c.DelayByAirport {
		out.DelayByAirport[k] = v
	}
	return out
}

// chartRange draws uniformly from [base, base+span).
type chartRange struct {
	airport string
	base    float64
	span    float64
}

var chartRanges = []chartRange{
	{"JFK", 10, 35},
	{"LGA", 8, 30},
	{"EWR", 12, 28},
	{"BOS", 6, 25},
	{"PHL", 5, 20},
}

// ChartAirports returns the airports plotted in chart samples, in legend order.
func ChartAirports() []string {
	out := make([]string, len(chartRanges))
	for i, r := range chartRanges {
		out[i] = r.airport
	}
	return out
}

// ChartSampler draws chart samples from its own RNG stream.
type ChartSampler struct {
	rng *rand.Rand
}

// NewChartSampler creates a sampler over rng.
func NewChartSampler(rng *rand.Rand) *ChartSampler {
	return &ChartSampler{rng: rng}
}

// Sample draws one sample stamped at t.
func (s *ChartSampler) Sample(t int) ChartSample {
	sample := ChartSample{Time: t, DelayByAirport: make(map[string]float64, len(chartRanges))}
	for _, r := range chartRanges {
		sample.DelayByAirport[r.airport] = r.base + s.rng.Float64()*r.span
	}
	return sample
}

// sampleBoundaries returns the multiples of SampleInterval in (prev, next],
// so every boundary is sampled once regardless of the speed multiplier.
func sampleBoundaries(prev, next float64) []int {
	var out []int
	for k := math.Floor(prev/SampleInterval) + 1; k*SampleInterval <= next; k++ {
		out = append(out, int(k*SampleInterval))
	}
	return out
}
