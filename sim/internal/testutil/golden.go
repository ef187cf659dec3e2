// Package testutil provides shared test infrastructure for the delay
// simulator: the golden dataset of expected run states and assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one run driven at a fixed speed for a number of ticks.
type GoldenTestCase struct {
	Name    string        `json:"name"`
	Speed   float64       `json:"speed"`
	Ticks   int           `json:"ticks"`
	Elapsed float64       `json:"elapsed"`
	Status  string        `json:"status"`
	Samples int           `json:"samples"`
	Metrics GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected metrics after the case's ticks.
// All fields are exact.
type GoldenMetrics struct {
	FlightsAffected    int   `json:"flights_affected"`
	TotalDelayMinutes  int   `json:"total_delay_minutes"`
	AirportsWithDelays int   `json:"airports_with_delays"`
	EconomicImpact     int64 `json:"economic_impact"`
	ResilienceScore    int   `json:"resilience_score"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
