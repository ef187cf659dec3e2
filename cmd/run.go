package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/airdelay-sim/airdelay-sim/sim"
)

var (
	// Scenario flags
	presetID       string   // Preset scenario id
	airportCodes   []string // Disrupted airports (custom scenario, or override for a preset)
	disruptionType string   // Custom disruption cause
	severityScore  int      // Custom severity 0-100
	durationMin    int      // Disruption window in minutes

	// Clock flags, shared by run and serve
	speedFlag    string        // Initial speed multiplier
	tickInterval time.Duration // Real time between ticks
)

// runCmd plays one scenario to the horizon and prints its summary
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scenario headless and print the summary",
	Run: func(cmd *cobra.Command, args []string) {
		catalog, presets, err := loadEnvironment(defaultsFilePath)
		if err != nil {
			logrus.Fatalf("Failed to load defaults: %v", err)
		}
		speed, err := sim.ParseSpeed(speedFlag)
		if err != nil {
			logrus.Fatalf("Invalid --speed: %v", err)
		}

		custom := cmd.Flags().Changed("disruption") || cmd.Flags().Changed("severity") ||
			(presetID == "" && cmd.Flags().Changed("airports"))
		sc := scenarioFromFlags(custom, presetID, airportCodes, disruptionType, severityScore, durationMin)

		d := sim.NewDriver(sim.DriverConfig{
			TickInterval: tickInterval,
			Catalog:      catalog,
			Presets:      presets,
			Seed:         seed,
			Speed:        speed,
		})
		defer d.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		startTime := time.Now()
		summary, err := runHeadless(ctx, d, sc)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if err := summary.Print(os.Stdout); err != nil {
			logrus.Fatalf("Failed to print summary: %v", err)
		}

		ts := d.TraceSummary()
		logrus.Infof("Simulation complete in %s: %d ticks, %d transitions, %d samples",
			time.Since(startTime).Round(time.Millisecond), ts.TotalTicks, ts.TotalTransitions, ts.SamplesAppended)
	},
}

// scenarioFromFlags builds the scenario selected on the command line. A
// custom scenario is built when custom is set; otherwise the preset (default
// weather-hub) is used, with any airports and duration given overriding it.
func scenarioFromFlags(custom bool, preset string, airports []string, disruption string, severity, duration int) sim.Scenario {
	if custom {
		return sim.CustomScenario(sim.DisruptionType(disruption), airports, severity, duration)
	}
	if preset == "" {
		preset = "weather-hub"
	}
	return sim.Scenario{
		Type:       sim.ScenarioPreset,
		ScenarioID: preset,
		Airports:   append([]string{}, airports...),
		Duration:   duration,
	}
}

// runHeadless submits sc and blocks until the run completes or ctx is done.
func runHeadless(ctx context.Context, d *sim.Driver, sc sim.Scenario) (sim.Summary, error) {
	done := make(chan sim.Summary, 1)
	d.Subscribe(func(ev sim.Event) {
		switch ev.Type {
		case sim.EventSample:
			logrus.Infof("[%s] flights=%d delay=%dmin resilience=%d",
				sim.FormatClock(ev.Run.Elapsed), ev.Metrics.FlightsAffected, ev.Metrics.TotalDelayMinutes, ev.Metrics.ResilienceScore)
		case sim.EventCompleted:
			if ev.Summary != nil {
				select {
				case done <- *ev.Summary:
				default:
				}
			}
		}
	})

	run, err := d.RunScenario(sc)
	if err != nil {
		return sim.Summary{}, err
	}
	logrus.Infof("Started %s", run)

	select {
	case s := <-done:
		return s, nil
	case <-ctx.Done():
		d.Stop()
		return sim.Summary{}, ctx.Err()
	}
}

func addClockFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&speedFlag, "speed", "1", "Speed multiplier (0.5, 1, 2, 4)")
	cmd.Flags().DurationVar(&tickInterval, "tick", sim.DefaultTickInterval, "Real time between ticks")
}

func init() {
	runCmd.Flags().StringVar(&presetID, "preset", "", "Preset scenario id (default weather-hub)")
	runCmd.Flags().StringSliceVar(&airportCodes, "airports", nil, "Comma-separated disrupted airport codes")
	runCmd.Flags().StringVar(&disruptionType, "disruption", string(sim.DisruptionWeather), "Custom disruption type (weather, technical, closure, atc)")
	runCmd.Flags().IntVar(&severityScore, "severity", 50, "Custom severity 0-100")
	runCmd.Flags().IntVar(&durationMin, "duration", 0, "Disruption window in minutes (0 keeps the preset's)")
	addClockFlags(runCmd)
}
