package sim

import "errors"

var (
	// ErrNoAirports is returned when a custom scenario selects no airports.
	ErrNoAirports = errors.New("no airports selected")
	// ErrUnknownPreset is returned for a preset id missing from the registry.
	ErrUnknownPreset = errors.New("unknown preset scenario")
	// ErrUnknownAirport is returned for an airport code missing from the catalog.
	ErrUnknownAirport = errors.New("unknown airport")
	// ErrUnknownScenarioType is returned when type is neither preset nor custom.
	ErrUnknownScenarioType = errors.New("unknown scenario type")
	// ErrInvalidSpeed is returned for a multiplier outside {0.5, 1, 2, 4}.
	ErrInvalidSpeed = errors.New("invalid speed multiplier")

	// ErrRunInProgress is returned when a scenario is submitted while running or paused.
	ErrRunInProgress = errors.New("run in progress")
	// ErrNotRunning is returned by Pause outside the running state.
	ErrNotRunning = errors.New("run is not running")
	// ErrRunCompleted is returned by Start once the horizon was reached; only Stop exits.
	ErrRunCompleted = errors.New("run completed")
)
