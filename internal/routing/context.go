package routing

// Criteria selects whether the worker tracks a single arrival-time
// criterion or a full Pareto frontier (McRAPTOR).
type Criteria int

const (
	MinArrival Criteria = iota
	Pareto
)

// Request is the external input to a search (§6).
type Request struct {
	AccessLegs        []TransferLeg
	EgressLegs        []TransferLeg
	EarliestDeparture int
	LatestDeparture   int
	SearchWindow      int
	SearchDate        string
	Direction         Direction
	Criteria          Criteria
}

// TuningParameters are the default-backed knobs that shape a search
// without changing its semantics.
type TuningParameters struct {
	MaxNumberOfTransfers int
	BoardSlackSeconds    int
	AlightSlackSeconds   int
	MinuteStepSeconds    int
}

// DefaultTuningParameters mirrors §6's stated defaults.
func DefaultTuningParameters() TuningParameters {
	return TuningParameters{
		MaxNumberOfTransfers: 12,
		BoardSlackSeconds:    0,
		AlightSlackSeconds:   0,
		MinuteStepSeconds:    60,
	}
}

// SearchContext is the immutable bundle (C7) a Worker holds for its
// entire lifetime: the request, tuning parameters, the direction
// strategy, and the provider handle.
type SearchContext struct {
	Request    Request
	Tuning     TuningParameters
	Calculator *Calculator
	Provider   Provider
}

// NewSearchContext validates req/tuning and builds an immutable
// context, or returns a descriptive error (§7) before any search
// loop is ever entered.
func NewSearchContext(provider Provider, req Request, tuning TuningParameters) (*SearchContext, error) {
	if err := validateRequest(req, tuning); err != nil {
		return nil, err
	}
	return &SearchContext{
		Request:    req,
		Tuning:     tuning,
		Calculator: NewCalculator(req.Direction),
		Provider:   provider,
	}, nil
}

// destinationStops returns the distinct FromStop set of the egress
// legs: the stops a search must reach for a journey to be completable.
func (c *SearchContext) destinationStops() []StopID {
	seen := make(map[StopID]bool, len(c.Request.EgressLegs))
	var out []StopID
	for _, e := range c.Request.EgressLegs {
		if seen[e.FromStop] {
			continue
		}
		seen[e.FromStop] = true
		out = append(out, e.FromStop)
	}
	return out
}
