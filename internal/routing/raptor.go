package routing

import "sort"

// Engine is the HTTP/CLI-facing adapter around the Range-RAPTOR core:
// it turns a handful of source/target stops and a departure time into
// a SearchContext + Worker run, and renders the result as the
// API-shaped Journey/Leg the rest of the repository (handler, CLI)
// already expects. It replaces the teacher's single-criterion,
// single-pass Raptor.FindRoute with a real Range-RAPTOR search, kept
// under a similar entry-point shape.
type Engine struct {
	Provider *MemoryProvider
	Tuning   TuningParameters
}

func NewEngine(provider *MemoryProvider) *Engine {
	return &Engine{Provider: provider, Tuning: DefaultTuningParameters()}
}

// Journey is the JSON-facing rendering of a Path, matching the shape
// the HTTP handler already serializes to clients.
type Journey struct {
	Legs              []APILeg `json:"legs"`
	NumberOfTransfers int      `json:"number_of_transfers"`
	DepartureTime     string   `json:"departure_time"`
	ArrivalTime       string   `json:"arrival_time"`
	DurationSeconds   int      `json:"duration_seconds"`
}

type APILeg struct {
	Type       string `json:"type"` // "transit" or "walk"
	FromStop   StopID `json:"from_stop"`
	ToStop     StopID `json:"to_stop"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   int    `json:"duration"`
	RouteCode  string `json:"route_code,omitempty"`
	RouteColor string `json:"route_color,omitempty"`
}

// FindRoute runs a single-departure-minute Range-RAPTOR search from
// sourceStops (stop -> initial access walk seconds) to any of
// targetStops, and returns the best (earliest-arrival) journey, or
// nil if none was found. dayType selects the service calendar.
func (e *Engine) FindRoute(sourceStops map[StopID]int, targetStops map[StopID]bool, departureTime int, dayType string) (*Journey, error) {
	paths, err := e.Search(sourceStops, targetStops, departureTime, departureTime, dayType)
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
	return e.ToJourney(best), nil
}

// Search runs a full Range-RAPTOR window search and returns the
// Pareto set of journeys as Path records (the core shape), for
// callers that want more than the single best journey.
func (e *Engine) Search(sourceStops map[StopID]int, targetStops map[StopID]bool, earliestDeparture, latestDeparture int, dayType string) ([]Path, error) {
	req := Request{
		AccessLegs:        accessLegsFrom(sourceStops),
		EgressLegs:        egressLegsFrom(targetStops),
		EarliestDeparture: earliestDeparture,
		LatestDeparture:   latestDeparture,
		SearchDate:        dayType,
		Direction:         Forward,
		Criteria:          MinArrival,
	}
	ctx, err := NewSearchContext(e.Provider, req, e.Tuning)
	if err != nil {
		return nil, err
	}
	state := NewSingleCriterionState(ctx.Calculator, e.Provider.NumStops(), e.Tuning.MaxNumberOfTransfers+1)
	worker := NewWorker(ctx, state, nil)
	paths, err := worker.Run()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].ArrivalTime < paths[j].ArrivalTime })
	return paths, nil
}

// SearchPareto runs the same window search as Search but tracks a
// full (arrival time, transfers, fare cost) Pareto frontier via
// MultiCriterionState, for callers that want fare-aware alternatives
// rather than only the earliest arrival.
func (e *Engine) SearchPareto(sourceStops map[StopID]int, targetStops map[StopID]bool, earliestDeparture, latestDeparture int, dayType string) ([]Path, error) {
	req := Request{
		AccessLegs:        accessLegsFrom(sourceStops),
		EgressLegs:        egressLegsFrom(targetStops),
		EarliestDeparture: earliestDeparture,
		LatestDeparture:   latestDeparture,
		SearchDate:        dayType,
		Direction:         Forward,
		Criteria:          Pareto,
	}
	ctx, err := NewSearchContext(e.Provider, req, e.Tuning)
	if err != nil {
		return nil, err
	}
	state := NewMultiCriterionState(ctx.Calculator, e.Provider.NumStops(), e.Tuning.MaxNumberOfTransfers+1)
	worker := NewWorker(ctx, state, nil)
	paths, err := worker.Run()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].ArrivalTime < paths[j].ArrivalTime })
	return paths, nil
}

func accessLegsFrom(sourceStops map[StopID]int) []TransferLeg {
	legs := make([]TransferLeg, 0, len(sourceStops))
	for stop, walk := range sourceStops {
		legs = append(legs, TransferLeg{FromStop: StreetStop, ToStop: stop, Duration: walk})
	}
	return legs
}

func egressLegsFrom(targetStops map[StopID]bool) []TransferLeg {
	legs := make([]TransferLeg, 0, len(targetStops))
	for stop := range targetStops {
		legs = append(legs, TransferLeg{FromStop: stop, ToStop: StreetStop, Duration: 0})
	}
	return legs
}

// ToJourney renders a Path into the API-facing Journey, enriching
// transit legs with the pattern's route code/color.
func (e *Engine) ToJourney(p Path) *Journey {
	legs := make([]APILeg, 0, len(p.Legs))
	for _, l := range p.Legs {
		if l.IsTransfer {
			legs = append(legs, APILeg{
				Type:      "walk",
				FromStop:  l.BoardStop,
				ToStop:    l.AlightStop,
				StartTime: SecondsToClock(l.BoardTime),
				EndTime:   SecondsToClock(l.AlightTime),
				Duration:  l.AlightTime - l.BoardTime,
			})
			continue
		}
		leg := APILeg{
			Type:      "transit",
			FromStop:  l.BoardStop,
			ToStop:    l.AlightStop,
			StartTime: SecondsToClock(l.BoardTime),
			EndTime:   SecondsToClock(l.AlightTime),
			Duration:  l.AlightTime - l.BoardTime,
		}
		if pattern := e.Provider.Pattern(l.Pattern); pattern != nil {
			leg.RouteCode = pattern.LineCode
			leg.RouteColor = pattern.LineColor
		}
		legs = append(legs, leg)
	}
	return &Journey{
		Legs:              legs,
		NumberOfTransfers: p.NumberOfTransfers,
		DepartureTime:     SecondsToClock(p.DepartureTime),
		ArrivalTime:       SecondsToClock(p.ArrivalTime),
		DurationSeconds:   p.Duration,
	}
}
