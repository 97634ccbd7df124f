package routing

// Toy timetables used across the seed end-to-end scenarios and the
// property tests. Times are seconds past midnight.

func clock(h, m int) int { return h*3600 + m*60 }

// singleTripProvider builds the "two stops, one pattern, one trip"
// fixture: stop A (0) -> stop B (1), departing 09:00, arriving 09:30.
func singleTripProvider(inService bool) *MemoryProvider {
	stops := []Stop{
		{ID: 0, DBID: 1, Code: "A", Name: "Stop A"},
		{ID: 1, DBID: 2, Code: "B", Name: "Stop B"},
	}
	pattern := Pattern{
		ID:       0,
		Stops:    []StopID{0, 1},
		LineCode: "L1",
		Trips: []Trip{
			{
				ID:        0,
				ServiceID: "weekday",
				InService: inService,
				StopTimes: []StopTime{
					{Arrival: clock(9, 0), Departure: clock(9, 0)},
					{Arrival: clock(9, 30), Departure: clock(9, 30)},
				},
			},
		},
	}
	return NewMemoryProvider(stops, []Pattern{pattern}, nil)
}

// hubProvider builds the "two patterns meeting at a hub" fixture:
//
//	pattern A: O(0) -> D(1) direct, 08:00 -> 09:10 (70 min)
//	pattern B: O(0) -> H(2),       08:00 -> 08:20
//	pattern C: H(2) -> D(1),       08:25 -> 08:55
//
// The transfer route O -[B]-> H -[C]-> D takes 55 min with one round
// of boarding beyond the direct ride (one transfer), and never needs
// an explicit TransferLeg since B and C share stop H.
func hubProvider() *MemoryProvider {
	stops := []Stop{
		{ID: 0, DBID: 1, Code: "O", Name: "Origin"},
		{ID: 1, DBID: 2, Code: "D", Name: "Destination"},
		{ID: 2, DBID: 3, Code: "H", Name: "Hub"},
	}
	patternA := Pattern{
		ID:       0,
		Stops:    []StopID{0, 1},
		LineCode: "direct",
		Trips: []Trip{{
			ID:        0,
			ServiceID: "weekday",
			InService: true,
			StopTimes: []StopTime{
				{Arrival: clock(8, 0), Departure: clock(8, 0)},
				{Arrival: clock(9, 10), Departure: clock(9, 10)},
			},
		}},
	}
	patternB := Pattern{
		ID:       1,
		Stops:    []StopID{0, 2},
		LineCode: "feeder",
		Trips: []Trip{{
			ID:        0,
			ServiceID: "weekday",
			InService: true,
			StopTimes: []StopTime{
				{Arrival: clock(8, 0), Departure: clock(8, 0)},
				{Arrival: clock(8, 20), Departure: clock(8, 20)},
			},
		}},
	}
	patternC := Pattern{
		ID:       2,
		Stops:    []StopID{2, 1},
		LineCode: "trunk",
		Trips: []Trip{{
			ID:        0,
			ServiceID: "weekday",
			InService: true,
			StopTimes: []StopTime{
				{Arrival: clock(8, 25), Departure: clock(8, 25)},
				{Arrival: clock(8, 55), Departure: clock(8, 55)},
			},
		}},
	}
	return NewMemoryProvider(stops, []Pattern{patternA, patternB, patternC}, nil)
}

// disconnectedProvider has two stops: X sits on a single one-stop
// pattern with no trips and Y is on no pattern at all, so no journey
// between them is possible.
func disconnectedProvider() *MemoryProvider {
	stops := []Stop{
		{ID: 0, DBID: 1, Code: "X"},
		{ID: 1, DBID: 2, Code: "Y"},
	}
	pattern := Pattern{
		ID:       0,
		Stops:    []StopID{0},
		LineCode: "lonely",
	}
	return NewMemoryProvider(stops, []Pattern{pattern}, nil)
}

func runForward(provider *MemoryProvider, access, egress []TransferLeg, earliest, latest int, maxTransfers int) ([]Path, error) {
	req := Request{
		AccessLegs:        access,
		EgressLegs:        egress,
		EarliestDeparture: earliest,
		LatestDeparture:   latest,
		SearchDate:        "weekday",
		Direction:         Forward,
		Criteria:          MinArrival,
	}
	tuning := DefaultTuningParameters()
	tuning.MaxNumberOfTransfers = maxTransfers
	ctx, err := NewSearchContext(provider, req, tuning)
	if err != nil {
		return nil, err
	}
	state := NewSingleCriterionState(ctx.Calculator, provider.NumStops(), tuning.MaxNumberOfTransfers+1)
	worker := NewWorker(ctx, state, nil)
	return worker.Run()
}

func runReverse(provider *MemoryProvider, access, egress []TransferLeg, earliest, latest int, maxTransfers int) ([]Path, error) {
	req := Request{
		AccessLegs:        access,
		EgressLegs:        egress,
		EarliestDeparture: earliest,
		LatestDeparture:   latest,
		SearchDate:        "weekday",
		Direction:         Reverse,
		Criteria:          MinArrival,
	}
	tuning := DefaultTuningParameters()
	tuning.MaxNumberOfTransfers = maxTransfers
	ctx, err := NewSearchContext(provider, req, tuning)
	if err != nil {
		return nil, err
	}
	state := NewSingleCriterionState(ctx.Calculator, provider.NumStops(), tuning.MaxNumberOfTransfers+1)
	worker := NewWorker(ctx, state, nil)
	return worker.Run()
}
