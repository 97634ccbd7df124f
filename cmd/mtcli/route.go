package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/antigravity/morocco-transport/internal/csvtimetable"
	"github.com/antigravity/morocco-transport/internal/logging"
	"github.com/antigravity/morocco-transport/internal/routing"
)

var routeCmd = &cobra.Command{
	Use:   "route <from_stop_id> <to_stop_id>",
	Short: "Finds the earliest-arrival journey between two stops",
	Args:  cobra.ExactArgs(2),
	RunE:  route,
}

var (
	departureClock string
	dayType        string
	maxTransfers   int
)

func init() {
	routeCmd.Flags().StringVarP(&departureClock, "time", "t", "08:30:00", "Departure time, HH:MM:SS")
	routeCmd.Flags().StringVarP(&dayType, "day", "d", "weekday", "Service day: weekday, saturday, or sunday")
	routeCmd.Flags().IntVarP(&maxTransfers, "max-transfers", "m", 12, "Maximum number of transfers")
}

func route(cmd *cobra.Command, args []string) error {
	fromDBID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid from_stop_id: %w", err)
	}
	toDBID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid to_stop_id: %w", err)
	}

	departureTime, err := parseClock(departureClock)
	if err != nil {
		return fmt.Errorf("invalid --time: %w", err)
	}

	provider, err := csvtimetable.Load(fixtureDir)
	if err != nil {
		return fmt.Errorf("loading fixtures from %s: %w", fixtureDir, err)
	}

	fromID, ok := provider.StopIDForDBID(fromDBID)
	if !ok {
		return fmt.Errorf("unknown from_stop_id %d", fromDBID)
	}
	toID, ok := provider.StopIDForDBID(toDBID)
	if !ok {
		return fmt.Errorf("unknown to_stop_id %d", toDBID)
	}

	engine := routing.NewEngine(provider)
	engine.Tuning.MaxNumberOfTransfers = maxTransfers

	var inst routing.Instrumentation
	if verbose {
		inst = logging.NewVerboseInstrumentation()
	}

	journey, err := runSearch(engine, fromID, toID, departureTime, dayType, inst)
	if err != nil {
		return err
	}
	if journey == nil {
		fmt.Println("no journey found")
		return nil
	}

	fmt.Printf("departs %s, arrives %s (%d transfer(s), %s)\n",
		journey.DepartureTime, journey.ArrivalTime, journey.NumberOfTransfers, time.Duration(journey.DurationSeconds)*time.Second)
	for _, leg := range journey.Legs {
		if leg.Type == "transit" {
			fmt.Printf("  %s -> %s  %s  %s - %s\n", fmt.Sprint(leg.FromStop), fmt.Sprint(leg.ToStop), leg.RouteCode, leg.StartTime, leg.EndTime)
		} else {
			fmt.Printf("  %s -> %s  walk  %s - %s\n", fmt.Sprint(leg.FromStop), fmt.Sprint(leg.ToStop), leg.StartTime, leg.EndTime)
		}
	}
	return nil
}

// runSearch mirrors Engine.FindRoute but threads an Instrumentation,
// which the Engine's own convenience methods don't expose.
func runSearch(engine *routing.Engine, from, to routing.StopID, departureTime int, dayType string, inst routing.Instrumentation) (*routing.Journey, error) {
	req := routing.Request{
		AccessLegs:        []routing.TransferLeg{{FromStop: routing.StreetStop, ToStop: from, Duration: 0}},
		EgressLegs:        []routing.TransferLeg{{FromStop: to, ToStop: routing.StreetStop, Duration: 0}},
		EarliestDeparture: departureTime,
		LatestDeparture:   departureTime,
		SearchDate:        dayType,
		Direction:         routing.Forward,
		Criteria:          routing.MinArrival,
	}

	ctx, err := routing.NewSearchContext(engine.Provider, req, engine.Tuning)
	if err != nil {
		return nil, err
	}
	state := routing.NewSingleCriterionState(ctx.Calculator, engine.Provider.NumStops(), engine.Tuning.MaxNumberOfTransfers+1)
	worker := routing.NewWorker(ctx, state, inst)
	paths, err := worker.Run()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	best := paths[0]
	for _, p := range paths[1:] {
		if p.ArrivalTime < best.ArrivalTime {
			best = p
		}
	}
	return engine.ToJourney(best), nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, err
	}
	return routing.TimeToSeconds(t), nil
}
