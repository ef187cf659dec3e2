// sim/driver.go
package sim

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/airdelay-sim/airdelay-sim/sim/airport"
	"github.com/airdelay-sim/airdelay-sim/sim/trace"
)

// Driver owns one run: its clock, metrics, chart samples and spread intensity.
//
// State machine:
//
//	ready/paused --Start-----------> running
//	running      --Pause-----------> paused
//	any          --Stop------------> ready   (clears everything)
//	running      --tick hits 60----> completed (one-shot, emits the summary)
//
// At most one scheduler task is live per driver. Every task is tagged with a
// generation; leaving running bumps the generation, so a callback that raced
// with Pause/Stop/completion finds a stale tag and does nothing.
type Driver struct {
	mu     sync.Mutex
	emitMu sync.Mutex

	scheduler Scheduler
	interval  time.Duration
	catalog   *airport.Catalog
	presets   *PresetRegistry
	sampler   *ChartSampler

	run       Run
	metrics   Metrics
	samples   []ChartSample
	intensity airport.Intensity
	summary   *Summary
	trace     *trace.RunTrace

	task Task
	gen  uint64

	listeners []Listener
}

// Snapshot is a copy of the driver state.
type Snapshot struct {
	Run       Run               `json:"run"`
	Metrics   Metrics           `json:"metrics"`
	Samples   []ChartSample     `json:"samples"`
	Intensity airport.Intensity `json:"intensity"`
	Summary   *Summary          `json:"summary,omitempty"`
}

// NewDriver creates a ready driver.
func NewDriver(cfg DriverConfig) *Driver {
	cfg = cfg.withDefaults()
	rng := NewPartitionedRNG(cfg.Seed)
	return &Driver{
		scheduler: cfg.Scheduler,
		interval:  cfg.TickInterval,
		catalog:   cfg.Catalog,
		presets:   cfg.Presets,
		sampler:   NewChartSampler(rng.ForSubsystem(SubsystemChart)),
		run:       initialRun(cfg.Speed),
		metrics:   InitialMetrics(),
	}
}

// Catalog returns the airport catalog the driver validates against.
func (d *Driver) Catalog() *airport.Catalog { return d.catalog }

// Presets returns the preset registry the driver resolves against.
func (d *Driver) Presets() *PresetRegistry { return d.presets }

// Subscribe registers l for all subsequent events.
func (d *Driver) Subscribe(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// RunScenario resolves sc and starts a fresh run with it.
// Allowed from ready or completed; ErrRunInProgress otherwise.
func (d *Driver) RunScenario(sc Scenario) (Run, error) {
	resolved, err := sc.Resolve(d.presets, d.catalog)
	if err != nil {
		return Run{}, fmt.Errorf("run scenario: %w", err)
	}

	d.mu.Lock()
	if d.run.Status == StatusRunning || d.run.Status == StatusPaused {
		d.mu.Unlock()
		return Run{}, ErrRunInProgress
	}
	d.cancelTaskLocked()

	from := d.run.Status
	d.resetLocked()
	d.run.ID = uuid.NewString()
	d.run.Scenario = &resolved
	d.run.DisruptedAirports = append([]string{}, resolved.Airports...)
	d.trace = trace.NewRunTrace(d.run.ID)
	d.enterRunningLocked(from, "run")

	run := d.run.clone()
	logrus.Infof("Run %s started: %s scenario, airports=%v, speed=%s",
		run.ID, resolved.Type, run.DisruptedAirports, run.Speed)
	d.unlockAndEmit([]Event{d.eventLocked(EventStatus)})
	return run, nil
}

// Start resumes a paused run or plays a ready one. A no-op when already
// running; ErrRunCompleted once the horizon was reached.
func (d *Driver) Start() error {
	d.mu.Lock()
	switch d.run.Status {
	case StatusRunning:
		d.mu.Unlock()
		return nil
	case StatusCompleted:
		d.mu.Unlock()
		return ErrRunCompleted
	}
	from := d.run.Status
	if d.run.ID == "" {
		d.run.ID = uuid.NewString()
		d.trace = trace.NewRunTrace(d.run.ID)
	}
	d.enterRunningLocked(from, "start")
	logrus.Infof("Run %s %s -> running at %s", d.run.ID, from, FormatClock(d.run.Elapsed))
	d.unlockAndEmit([]Event{d.eventLocked(EventStatus)})
	return nil
}

// Pause freezes a running run. Elapsed time and metrics are preserved exactly.
func (d *Driver) Pause() error {
	d.mu.Lock()
	if d.run.Status != StatusRunning {
		status := d.run.Status
		d.mu.Unlock()
		return fmt.Errorf("%w: status is %s", ErrNotRunning, status)
	}
	d.leaveRunningLocked(StatusPaused, "pause")
	logrus.Infof("Run %s paused at %s", d.run.ID, FormatClock(d.run.Elapsed))
	d.unlockAndEmit([]Event{d.eventLocked(EventStatus)})
	return nil
}

// Stop cancels the timer and returns the driver to its initial state from any
// status. The speed selection is kept.
func (d *Driver) Stop() {
	d.mu.Lock()
	d.cancelTaskLocked()
	from := d.run.Status
	if d.trace != nil && from != StatusReady {
		d.trace.RecordTransition(trace.TransitionRecord{
			From: string(from), To: string(StatusReady), Elapsed: d.run.Elapsed, Reason: "stop",
		})
	}
	if d.run.ID != "" {
		logrus.Infof("Run %s stopped from %s at %s", d.run.ID, from, FormatClock(d.run.Elapsed))
	}
	d.resetLocked()
	d.unlockAndEmit([]Event{d.eventLocked(EventReset)})
}

// Close releases the scheduler task. Equivalent to Stop.
func (d *Driver) Close() {
	d.Stop()
}

// Tick advances the run by one step. A no-op unless running, so repeated
// calls after completion leave the state unchanged.
func (d *Driver) Tick() {
	d.mu.Lock()
	events := d.tickLocked()
	d.unlockAndEmit(events)
}

// SetSpeed changes the multiplier applied from the next tick on.
func (d *Driver) SetSpeed(s Speed) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, float64(s))
	}
	d.mu.Lock()
	if d.run.Speed == s {
		d.mu.Unlock()
		return nil
	}
	logrus.Infof("Speed %s -> %s", d.run.Speed, s)
	d.run.Speed = s
	d.unlockAndEmit([]Event{d.eventLocked(EventStatus)})
	return nil
}

// Snapshot returns a deep copy of the current state.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	samples := make([]ChartSample, len(d.samples))
	for i, s := range d.samples {
		samples[i] = s.clone()
	}
	intensity := d.intensity.Clone()
	if intensity == nil {
		intensity = airport.Intensity{}
	}
	var summary *Summary
	if d.summary != nil {
		s := *d.summary
		summary = &s
	}
	return Snapshot{
		Run:       d.run.clone(),
		Metrics:   d.metrics,
		Samples:   samples,
		Intensity: intensity,
		Summary:   summary,
	}
}

// TraceSummary summarizes the transitions and ticks of the current (or most
// recently stopped) run.
func (d *Driver) TraceSummary() *trace.TraceSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return trace.Summarize(d.trace)
}

// === internals; all *Locked methods require d.mu ===

func (d *Driver) onTask(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	events := d.tickLocked()
	d.unlockAndEmit(events)
}

func (d *Driver) tickLocked() []Event {
	if d.run.Status != StatusRunning {
		return nil
	}
	prev := d.run.Elapsed
	next := math.Min(prev+float64(d.run.Speed), Horizon)
	d.run.Elapsed = next
	d.metrics = ComputeMetrics(next)
	d.intensity = airport.Spread(d.catalog, d.run.DisruptedAirports)

	events := []Event{d.eventLocked(EventTick)}
	boundaries := sampleBoundaries(prev, next)
	for _, b := range boundaries {
		sample := d.sampler.Sample(b)
		d.samples = append(d.samples, sample)
		ev := d.eventLocked(EventSample)
		s := sample.clone()
		ev.Sample = &s
		events = append(events, ev)
	}
	if d.trace != nil {
		d.trace.RecordTick(trace.TickRecord{
			From: prev, To: next, Speed: float64(d.run.Speed), SamplesAppended: len(boundaries),
		})
	}
	logrus.Debugf("[t=%s] tick %s, flights=%d delay=%dmin resilience=%d",
		FormatClock(next), d.run.Speed, d.metrics.FlightsAffected, d.metrics.TotalDelayMinutes, d.metrics.ResilienceScore)

	if next >= Horizon {
		events = append(events, d.completeLocked()...)
	}
	return events
}

func (d *Driver) completeLocked() []Event {
	d.leaveRunningLocked(StatusCompleted, "horizon")
	summary := NewSummary(d.run, d.metrics, d.samples)
	d.summary = &summary
	logrus.Infof("Run %s completed: %d flights affected, %d delay minutes, impact %s",
		d.run.ID, summary.FlightsAffected, summary.TotalDelayMinutes, summary.EconomicImpactMillions())

	done := d.eventLocked(EventCompleted)
	s := summary
	done.Summary = &s
	return []Event{d.eventLocked(EventStatus), done}
}

func (d *Driver) enterRunningLocked(from Status, reason string) {
	d.run.Status = StatusRunning
	if d.trace != nil {
		d.trace.RecordTransition(trace.TransitionRecord{
			From: string(from), To: string(StatusRunning), Elapsed: d.run.Elapsed, Reason: reason,
		})
	}
	d.cancelTaskLocked()
	d.gen++
	gen := d.gen
	d.task = d.scheduler.Every(d.interval, func() { d.onTask(gen) })
}

// leaveRunningLocked moves out of running; the spread view is only live
// while running.
func (d *Driver) leaveRunningLocked(to Status, reason string) {
	d.cancelTaskLocked()
	from := d.run.Status
	d.run.Status = to
	d.intensity = nil
	if d.trace != nil {
		d.trace.RecordTransition(trace.TransitionRecord{
			From: string(from), To: string(to), Elapsed: d.run.Elapsed, Reason: reason,
		})
	}
}

func (d *Driver) cancelTaskLocked() {
	d.gen++
	if d.task != nil {
		d.task.Stop()
		d.task = nil
	}
}

func (d *Driver) resetLocked() {
	d.run = initialRun(d.run.Speed)
	d.metrics = InitialMetrics()
	d.samples = nil
	d.intensity = nil
	d.summary = nil
}

func (d *Driver) eventLocked(t EventType) Event {
	return Event{
		Type:      t,
		Run:       d.run.clone(),
		Metrics:   d.metrics,
		Intensity: d.intensity.Clone(),
	}
}

// unlockAndEmit hands off from d.mu to emitMu so events reach listeners in
// production order without holding the state lock.
func (d *Driver) unlockAndEmit(events []Event) {
	if len(events) == 0 || len(d.listeners) == 0 {
		d.mu.Unlock()
		return
	}
	listeners := append([]Listener{}, d.listeners...)
	d.emitMu.Lock()
	d.mu.Unlock()
	defer d.emitMu.Unlock()
	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}
