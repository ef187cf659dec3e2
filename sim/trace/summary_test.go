package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("expected non-nil summary")
	}
	if summary.TotalTicks != 0 || summary.TotalTransitions != 0 || summary.Completed {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	rt := NewRunTrace("run-1")

	// WHEN summarized
	summary := Summarize(rt)

	// THEN all counts are zero and the run id is carried
	if summary.RunID != "run-1" {
		t.Errorf("expected run id run-1, got %q", summary.RunID)
	}
	if summary.TotalTicks != 0 || summary.TotalTransitions != 0 {
		t.Error("expected 0 ticks and transitions")
	}
	if summary.Pauses != 0 || summary.SamplesAppended != 0 {
		t.Error("expected 0 pauses and samples")
	}
	if summary.Completed || summary.CompletedAt != 0 || summary.MaxElapsed != 0 {
		t.Error("expected incomplete run at elapsed 0")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a run that started, paused, resumed and completed
	rt := NewRunTrace("run-2")
	rt.RecordTransition(TransitionRecord{From: "ready", To: "running", Reason: "run"})
	rt.RecordTick(TickRecord{From: 0, To: 2, Speed: 2})
	rt.RecordTick(TickRecord{From: 2, To: 4, Speed: 2})
	rt.RecordTransition(TransitionRecord{From: "running", To: StatusPaused, Elapsed: 4, Reason: "pause"})
	rt.RecordTransition(TransitionRecord{From: StatusPaused, To: "running", Elapsed: 4, Reason: "start"})
	rt.RecordTick(TickRecord{From: 4, To: 6, Speed: 2, SamplesAppended: 1})
	rt.RecordTransition(TransitionRecord{From: "running", To: StatusCompleted, Elapsed: 60, Reason: "horizon"})

	// WHEN summarized
	summary := Summarize(rt)

	// THEN counts match
	if summary.TotalTransitions != 4 {
		t.Errorf("expected 4 transitions, got %d", summary.TotalTransitions)
	}
	if summary.TotalTicks != 3 {
		t.Errorf("expected 3 ticks, got %d", summary.TotalTicks)
	}
	if summary.Pauses != 1 {
		t.Errorf("expected 1 pause, got %d", summary.Pauses)
	}
	if summary.SamplesAppended != 1 {
		t.Errorf("expected 1 sample, got %d", summary.SamplesAppended)
	}
	if summary.MaxElapsed != 6 {
		t.Errorf("expected max elapsed 6, got %v", summary.MaxElapsed)
	}
	if !summary.Completed || summary.CompletedAt != 60 {
		t.Errorf("expected completion at 60, got completed=%v at %v", summary.Completed, summary.CompletedAt)
	}
}

func TestRunTrace_StampsRunID(t *testing.T) {
	rt := NewRunTrace("run-3")
	rt.RecordTransition(TransitionRecord{RunID: "other", From: "ready", To: "running"})
	rt.RecordTick(TickRecord{RunID: "other", From: 0, To: 1})

	if rt.Transitions[0].RunID != "run-3" || rt.Ticks[0].RunID != "run-3" {
		t.Errorf("expected records stamped with run-3, got %q / %q", rt.Transitions[0].RunID, rt.Ticks[0].RunID)
	}
}
