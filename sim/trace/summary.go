package trace

// TraceSummary aggregates statistics from a RunTrace.
type TraceSummary struct {
	RunID            string
	TotalTransitions int
	TotalTicks       int
	Pauses           int
	SamplesAppended  int
	MaxElapsed       float64
	Completed        bool
	CompletedAt      float64 // elapsed at completion; 0 if not completed
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) *TraceSummary {
	summary := &TraceSummary{}
	if rt == nil {
		return summary
	}
	summary.RunID = rt.RunID
	summary.TotalTransitions = len(rt.Transitions)
	summary.TotalTicks = len(rt.Ticks)

	for _, t := range rt.Transitions {
		switch t.To {
		case StatusPaused:
			summary.Pauses++
		case StatusCompleted:
			if !summary.Completed {
				summary.Completed = true
				summary.CompletedAt = t.Elapsed
			}
		}
	}
	for _, t := range rt.Ticks {
		summary.SamplesAppended += t.SamplesAppended
		if t.To > summary.MaxElapsed {
			summary.MaxElapsed = t.To
		}
	}
	return summary
}
