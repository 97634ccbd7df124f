package routing

// Worker is the §4.5 Range-RAPTOR Worker (C5): the outer minute loop
// and the round loop, orchestrating the trip search (C3) and worker
// state (C4) against patterns and transfers pulled from the provider
// (C1) via the calculator (C2).
//
// A Worker is constructed once per search and owned by exactly one
// goroutine; it performs no I/O and never suspends (§5).
type Worker struct {
	ctx   *SearchContext
	state State
	inst  Instrumentation

	destinations []StopID
}

// NewWorker builds a Worker over ctx. state must already be sized for
// ctx.Provider.NumStops() and ctx.Tuning.MaxNumberOfTransfers. Pass
// nil for inst to disable instrumentation.
func NewWorker(ctx *SearchContext, state State, inst Instrumentation) *Worker {
	if inst == nil {
		inst = NoopInstrumentation{}
	}
	return &Worker{ctx: ctx, state: state, inst: inst, destinations: ctx.destinationStops()}
}

// Run executes the full Range-RAPTOR search: for every departure (or
// arrival) minute in the request window, seed access legs, run
// rounds until none improves, then snapshot. It returns the unified
// Pareto set of journeys across the whole window.
func (w *Worker) Run() ([]Path, error) {
	if err := w.ctx.Provider.Init(w.ctx.Request.SearchDate); err != nil {
		return nil, err
	}

	calc := w.ctx.Calculator
	minutes := calc.RangeRaptorMinutes(w.ctx.Request.EarliestDeparture, w.ctx.Request.LatestDeparture, w.ctx.Tuning.MinuteStepSeconds)

	for _, minute := range minutes {
		w.inst.IterationStarted(minute)

		w.state.SetupIteration(minute)
		for _, access := range w.ctx.Request.AccessLegs {
			w.state.SetInitialTimeForIteration(access, minute)
		}

		for w.state.IsNewRoundAvailable() {
			w.state.PrepareForNextRound()
			w.inst.RoundStarted(w.state.Round())
			w.runTransitRound()
			w.runTransferRound()
			w.inst.RoundFinished(w.state.Round(), len(w.state.StopsTouchedPreviousRound()))
		}

		w.state.IterationComplete()
		w.inst.IterationFinished(minute)
	}

	return w.state.ExtractPaths(w.ctx.Request.EgressLegs, w.destinations), nil
}

// runTransitRound is §4.5 step 1-5: find patterns touching the
// previous round's touched stops, and for each, sweep its stops in
// direction order, boarding/reboarding and alighting as it goes.
func (w *Worker) runTransitRound() {
	touched := w.state.StopsTouchedPreviousRound()
	if len(touched) == 0 {
		return
	}
	provider := w.ctx.Provider
	calc := w.ctx.Calculator
	tuning := w.ctx.Tuning

	patterns := provider.PatternsTouching(touched)
	for _, pid := range patterns {
		pattern := provider.Pattern(pid)
		if pattern == nil {
			continue
		}
		w.runPattern(pattern, calc, tuning)
	}
	w.state.TransitsForRoundComplete()
}

// runPattern sweeps one pattern's stops in direction-appropriate
// order, boarding a trip when a touched stop offers an earlier (or,
// direction-appropriately, better) one, and alighting at every stop
// reached by the currently-boarded trip.
func (w *Worker) runPattern(pattern *Pattern, calc *Calculator, tuning TuningParameters) {
	positions := calc.PatternStopIterator(pattern.NumStops())
	search := calc.CreateTripSearch(pattern, func(trip TripID) bool {
		return !w.ctx.Provider.IsTripInService(pattern.ID, trip)
	})

	var boardedTrip TripID
	var boardStop StopID
	var boardTime int
	boarded := false

	for _, pos := range positions {
		stop := pattern.StopAt(pos)

		if boarded {
			t := search.TripAt(boardedTrip)
			arr, _ := t.TimesAtPosition(pos)
			cost := patternCost(pattern)
			w.state.TransitStopReached(pattern.ID, boardedTrip, boardStop, boardTime, stop, arr, cost)
		}

		prevArrival := w.state.PreviousRoundArrival(stop)
		if !isReached(prevArrival, calc) {
			continue
		}
		targetTime := calc.EarliestBoardingTime(prevArrival, tuning.BoardSlackSeconds, tuning.AlightSlackSeconds)

		trip, tripTime, found := search.Search(pos, targetTime)
		if !found {
			continue
		}
		// Re-boarding always wins iff it yields a strictly better
		// trip than the one currently held (§4.5 step 4).
		if !boarded || calc.IsBetter(tripTime, heldTripTimeAtPosition(calc, search, boardedTrip, pos)) {
			boardedTrip = trip
			boardStop = stop
			boardTime = tripTime
			boarded = true
		}
	}
}

// heldTripTimeAtPosition returns the currently-held trip's time at pos
// in the same unit Search returns for this direction: departure
// forward, arrival reverse. tripTime (from Search) and this value must
// be comparable by calc.IsBetter.
func heldTripTimeAtPosition(calc *Calculator, search *TripSearch, trip TripID, pos int) int {
	t := search.TripAt(trip)
	arr, dep := t.TimesAtPosition(pos)
	if calc.Direction() == Forward {
		return dep
	}
	return arr
}

func patternCost(p *Pattern) int { return p.FareCents }

func isReached(t int, calc *Calculator) bool {
	if calc.Direction() == Forward {
		return t < Infinity
	}
	return t > -Infinity
}

// runTransferRound is §4.5's transfer-relaxation phase: every stop
// touched by transit this round relaxes its outgoing transfers.
// Transfers do not compound within a round (§4.5): the set iterated
// here is fixed before any transfer-to-stop call runs.
func (w *Worker) runTransferRound() {
	touched := w.state.StopsTouchedByTransitCurrentRound()
	for _, stop := range touched {
		transfers := w.ctx.Provider.Transfers(stop)
		if len(transfers) == 0 {
			continue
		}
		w.state.TransferToStops(stop, transfers)
	}
	w.state.TransfersForRoundComplete()
}
