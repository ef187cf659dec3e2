package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/airdelay-sim/airdelay-sim/sim"
	"github.com/airdelay-sim/airdelay-sim/sim/airport"
)

var listAirports bool // Also print the airport catalog

// presetsCmd lists the scenarios and airports runs can use
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List preset scenarios and the airport catalog",
	Run: func(cmd *cobra.Command, args []string) {
		catalog, presets, err := loadEnvironment(defaultsFilePath)
		if err != nil {
			logrus.Fatalf("Failed to load defaults: %v", err)
		}
		if err := writePresets(cmd.OutOrStdout(), presets); err != nil {
			logrus.Fatalf("Failed to write presets: %v", err)
		}
		if listAirports {
			if err := writeAirports(cmd.OutOrStdout(), catalog); err != nil {
				logrus.Fatalf("Failed to write airports: %v", err)
			}
		}
	},
}

func writePresets(w io.Writer, presets *sim.PresetRegistry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEVERITY\tDURATION\tAIRPORTS\tTITLE")
	for _, p := range presets.List() {
		fmt.Fprintf(tw, "%s\t%s\t%dm\t%s\t%s\n", p.ID, p.Severity, p.Duration, strings.Join(p.Airports, ","), p.Title)
	}
	return tw.Flush()
}

func writeAirports(w io.Writer, catalog *airport.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCODE\tHUB\tLAT\tLNG\tNAME")
	for _, a := range catalog.Airports() {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%s\n", a.Code, a.Hub, a.Lat, a.Lng, a.Name)
	}
	return tw.Flush()
}

func init() {
	presetsCmd.Flags().BoolVar(&listAirports, "airports", false, "Also list the airport catalog")
}
