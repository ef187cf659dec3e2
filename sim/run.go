// Defines the Run struct that tracks one execution of the delay simulation,
// from scenario submission to completion or reset.

package sim

import (
	"fmt"
	"strconv"
	"time"
)

// Status represents the lifecycle state of a run.
type Status string

const (
	StatusReady     Status = "ready"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

const (
	// Horizon is the simulated-time ceiling (seconds) at which a run completes.
	Horizon = 60.0
	// SampleInterval is the simulated-time spacing (seconds) of chart samples.
	SampleInterval = 5.0
	// DefaultTickInterval is the real-time period between ticks.
	DefaultTickInterval = time.Second
)

// Speed is the simulated seconds added per tick.
type Speed float64

const (
	SpeedHalf      Speed = 0.5
	SpeedNormal    Speed = 1
	SpeedDouble    Speed = 2
	SpeedQuadruple Speed = 4
)

var validSpeeds = map[Speed]bool{
	SpeedHalf:      true,
	SpeedNormal:    true,
	SpeedDouble:    true,
	SpeedQuadruple: true,
}

// Valid reports whether s is one of the supported multipliers.
func (s Speed) Valid() bool {
	return validSpeeds[s]
}

func (s Speed) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64) + "x"
}

// ParseSpeed parses "0.5", "1", "2" or "4" (an optional trailing "x" is allowed).
func ParseSpeed(v string) (Speed, error) {
	if n := len(v); n > 0 && (v[n-1] == 'x' || v[n-1] == 'X') {
		v = v[:n-1]
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpeed, v)
	}
	s := Speed(f)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSpeed, f)
	}
	return s, nil
}

// Run is one execution of the mock simulation.
type Run struct {
	ID                string    `json:"id,omitempty"`
	Status            Status    `json:"status"`
	Elapsed           float64   `json:"elapsed"` // simulated seconds, clamped to Horizon
	Speed             Speed     `json:"speed"`
	DisruptedAirports []string  `json:"disrupted_airports"`
	Scenario          *Scenario `json:"scenario,omitempty"`
}

// initialRun returns a ready run that keeps the previous speed selection.
func initialRun(speed Speed) Run {
	return Run{
		Status:            StatusReady,
		Speed:             speed,
		DisruptedAirports: []string{},
	}
}

func (r Run) clone() Run {
	out := r
	out.DisruptedAirports = append([]string{}, r.DisruptedAirports...)
	if r.Scenario != nil {
		sc := r.Scenario.clone()
		out.Scenario = &sc
	}
	return out
}

// FormatClock renders simulated seconds as mm:ss.
func FormatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// This method returns a human-readable string representation of a Run.
func (r Run) String() string {
	return fmt.Sprintf("Run: (ID: %s, Status: %s, Elapsed: %s, Speed: %s, Disrupted: %v)",
		r.ID, r.Status, FormatClock(r.Elapsed), r.Speed, r.DisruptedAirports)
}
