package trace

// Status names used in TransitionRecord.To that Summarize recognizes.
const (
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// RunTrace collects the records of one run.
type RunTrace struct {
	RunID       string
	Transitions []TransitionRecord
	Ticks       []TickRecord
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace(runID string) *RunTrace {
	return &RunTrace{
		RunID:       runID,
		Transitions: make([]TransitionRecord, 0),
		Ticks:       make([]TickRecord, 0),
	}
}

// RecordTransition appends a transition record, stamping the run id.
func (rt *RunTrace) RecordTransition(record TransitionRecord) {
	record.RunID = rt.RunID
	rt.Transitions = append(rt.Transitions, record)
}

// RecordTick appends a tick record, stamping the run id.
func (rt *RunTrace) RecordTick(record TickRecord) {
	record.RunID = rt.RunID
	rt.Ticks = append(rt.Ticks, record)
}
