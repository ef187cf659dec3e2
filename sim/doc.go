// Package sim provides the mock delay-simulation engine for airdelay-sim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - run.go: Run lifecycle (ready → running ⇄ paused → completed) and speed multipliers
//   - metrics.go: the five clamped linear metrics derived from elapsed time
//   - driver.go: the Driver state machine, tick contract and event emission
//
// # Architecture
//
// The Driver owns exactly one run. Time only advances inside Tick, which is
// invoked by a Scheduler task while the run is running (or directly in tests).
// Deterministic pieces (ComputeMetrics, sampleBoundaries, airport.Spread) are
// pure functions; the decorative chart samples draw from an isolated
// PartitionedRNG stream so their randomness never reaches the metrics.
//
// Sub-packages:
//   - sim/airport/: airport catalog, degree-space proximity spread, delay bands
//   - sim/trace/: transition and tick recording for a run
//
// # Key Interfaces
//
//   - Scheduler: starts cancellable periodic tasks (TickerScheduler in
//     production, ManualScheduler in tests)
//   - Listener: receives Events after every state change
package sim
