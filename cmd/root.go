package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global CLI flags
	logLevel         string // Log verbosity level
	seed             int64  // Seed for the decorative chart samples
	defaultsFilePath string // Optional YAML file overriding the built-in airports and presets
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "airdelay-sim",
	Short: "Mock air-traffic delay simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
	SilenceUsage: true,
}

// setupLogging applies the --log level to the package-level logrus logger.
func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up global flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for the chart sample generator")
	rootCmd.PersistentFlags().StringVar(&defaultsFilePath, "defaults", "", "Path to a defaults YAML with airports and presets (built-ins when empty)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(presetsCmd)
}
