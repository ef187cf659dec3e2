package sim

import "github.com/airdelay-sim/airdelay-sim/sim/airport"

// EventType identifies what changed in the driver.
type EventType string

const (
	// EventStatus follows every status or speed change.
	EventStatus EventType = "status"
	// EventTick follows every tick that advanced elapsed time.
	EventTick EventType = "tick"
	// EventSample carries one appended chart sample.
	EventSample EventType = "sample"
	// EventCompleted carries the summary; emitted exactly once per run.
	EventCompleted EventType = "completed"
	// EventReset follows Stop.
	EventReset EventType = "reset"
)

// Event is a point-in-time view of the driver handed to listeners.
type Event struct {
	Type      EventType         `json:"type"`
	Run       Run               `json:"run"`
	Metrics   Metrics           `json:"metrics"`
	Intensity airport.Intensity `json:"intensity,omitempty"`
	Sample    *ChartSample      `json:"sample,omitempty"`
	Summary   *Summary          `json:"summary,omitempty"`
}

// Listener receives driver events in the order they were produced.
// Listeners run on the goroutine that caused the change and must not call
// back into the Driver; every Event already carries a copy of the state.
type Listener func(Event)
