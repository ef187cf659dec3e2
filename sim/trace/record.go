// Package trace records the status transitions and ticks of a simulation run.
// It has no dependencies on sim/ and stores pure data types only.
package trace

// TransitionRecord captures a single status change.
type TransitionRecord struct {
	RunID   string
	From    string
	To      string
	Elapsed float64 // simulated seconds at the transition
	Reason  string  // "run", "start", "pause", "stop", "horizon"
}

// TickRecord captures a single advance of simulated time.
type TickRecord struct {
	RunID           string
	From            float64
	To              float64
	Speed           float64
	SamplesAppended int
}
