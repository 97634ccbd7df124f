package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "mtcli",
	Short:        "Morocco transport routing tool",
	Long:         "Runs Range-RAPTOR journey searches and stop lookups against a CSV timetable fixture, without a database.",
	SilenceUsage: true,
}

var (
	fixtureDir string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&fixtureDir, "fixtures", "f", "./fixtures", "Directory containing stops.csv, patterns.csv, trips.csv, transfers.csv")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log round/iteration timing to stderr")
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(stopsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
