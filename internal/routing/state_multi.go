package routing

// criterionLabel is one entry of a multi-criterion Pareto bag: an
// arrival time paired with an accumulated secondary cost (e.g. fare),
// plus the back-pointer that produced it.
type criterionLabel struct {
	Arrival int
	Cost    int
	Back    Label
}

// dominates reports whether a weakly-dominates b under direction dir:
// a is no worse on every criterion and strictly better on at least
// one. Forward search prefers earlier arrival and lower cost.
func dominates(a, b criterionLabel, dir Direction) bool {
	var arrNoWorse, arrBetter bool
	if dir == Forward {
		arrNoWorse = a.Arrival <= b.Arrival
		arrBetter = a.Arrival < b.Arrival
	} else {
		arrNoWorse = a.Arrival >= b.Arrival
		arrBetter = a.Arrival > b.Arrival
	}
	costNoWorse := a.Cost <= b.Cost
	costBetter := a.Cost < b.Cost
	return arrNoWorse && costNoWorse && (arrBetter || costBetter)
}

// insertParetoLabel inserts cand into bag, discarding anything cand
// dominates, and reports whether cand survived (was not itself
// dominated by an existing entry).
func insertParetoLabel(bag []criterionLabel, cand criterionLabel, dir Direction) ([]criterionLabel, bool) {
	for _, existing := range bag {
		if dominates(existing, cand, dir) {
			return bag, false
		}
	}
	out := bag[:0]
	for _, existing := range bag {
		if !dominates(cand, existing, dir) {
			out = append(out, existing)
		}
	}
	out = append(out, cand)
	return out, true
}

// MultiCriterionState is the §4.4 multi-criterion (McRAPTOR) Worker
// State: it maintains a Pareto frontier per stop, per round, over
// (arrival_time, accumulated cost) — number of transfers is implicit
// in the round index, so the full (arrival, transfers, cost) frontier
// falls out of comparing bags across rounds at path-extraction time.
//
// Boarding still uses a single scalar bound (the best arrival in the
// bag, ignoring cost) to drive the trip search, matching the §4.3
// contract of a single earliest-boarding-time target; cost is
// threaded through by taking the cheapest bag entry at the board stop
// in the previous round and adding the ride's incremental cost. This
// is a deliberate approximation (a true any-to-any cost/time coupling
// would require one trip search per bag entry) documented in
// DESIGN.md.
type MultiCriterionState struct {
	calc      *Calculator
	numStops  int
	maxRounds int
	round     int

	bags     [][][]criterionLabel // [round][stop]
	bestBags [][]criterionLabel   // [stop], across all rounds

	prevRoundTouched []StopID
	roundTouched     *touchedSet
	transitTouched   *touchedSet

	currentDepartureTime int
	snapshots            []multiIterationSnapshot
}

type multiIterationSnapshot struct {
	departureTime int
	bags          [][][]criterionLabel
	maxRound      int
}

func NewMultiCriterionState(calc *Calculator, numStops, maxRounds int) *MultiCriterionState {
	s := &MultiCriterionState{calc: calc, numStops: numStops, maxRounds: maxRounds}
	s.bags = make([][][]criterionLabel, maxRounds+1)
	for k := 0; k <= maxRounds; k++ {
		s.bags[k] = make([][]criterionLabel, numStops)
	}
	s.bestBags = make([][]criterionLabel, numStops)
	s.roundTouched = newTouchedSet(numStops)
	s.transitTouched = newTouchedSet(numStops)
	return s
}

func (s *MultiCriterionState) Round() int { return s.round }

func (s *MultiCriterionState) SetupIteration(departureTime int) {
	s.round = 0
	s.currentDepartureTime = departureTime
	s.roundTouched.reset()
	s.transitTouched.reset()
	s.prevRoundTouched = s.prevRoundTouched[:0]
}

func (s *MultiCriterionState) SetInitialTimeForIteration(access TransferLeg, departureTime int) {
	t := departureTime
	if s.calc.Direction() == Forward {
		t += access.Duration
	} else {
		t -= access.Duration
	}
	stop := access.ToStop
	cand := criterionLabel{Arrival: t, Cost: access.Cost, Back: Label{FromStop: stop, PatternID: TransferPattern, BoardTime: t, Valid: true}}

	bag, added := insertParetoLabel(s.bags[0][stop], cand, s.calc.Direction())
	if !added {
		return
	}
	s.bags[0][stop] = bag
	best, addedBest := insertParetoLabel(s.bestBags[stop], cand, s.calc.Direction())
	if addedBest {
		s.bestBags[stop] = best
	}
	s.roundTouched.add(stop)
}

func (s *MultiCriterionState) IsNewRoundAvailable() bool {
	return s.roundTouched.len() > 0 && s.round < s.maxRounds
}

func (s *MultiCriterionState) PrepareForNextRound() {
	s.round++
	for stop := 0; stop < s.numStops; stop++ {
		s.bags[s.round][stop] = append([]criterionLabel(nil), s.bags[s.round-1][stop]...)
	}
	s.prevRoundTouched = append(s.prevRoundTouched[:0], s.roundTouched.list()...)
	s.roundTouched.reset()
	s.transitTouched.reset()
}

func (s *MultiCriterionState) StopsTouchedPreviousRound() []StopID { return s.prevRoundTouched }

func (s *MultiCriterionState) StopsTouchedByTransitCurrentRound() []StopID {
	return s.transitTouched.list()
}

// bestArrivalInBag returns the best (direction-appropriate) arrival
// time among a bag's entries, or the worst-time sentinel if empty.
func (s *MultiCriterionState) bestArrivalInBag(bag []criterionLabel) int {
	best := s.calc.WorstTime()
	for _, l := range bag {
		if s.calc.IsBetter(l.Arrival, best) {
			best = l.Arrival
		}
	}
	return best
}

func (s *MultiCriterionState) cheapestCostInBag(bag []criterionLabel) int {
	entry, ok := cheapestEntryInBag(bag)
	if !ok {
		return 0
	}
	return entry.Cost
}

// cheapestEntryInBag returns the bag entry cheapestCostInBag's cost
// came from, so path reconstruction can follow the same predecessor
// TransitStopReached used.
func cheapestEntryInBag(bag []criterionLabel) (criterionLabel, bool) {
	if len(bag) == 0 {
		return criterionLabel{}, false
	}
	best := bag[0]
	for _, l := range bag[1:] {
		if l.Cost < best.Cost {
			best = l
		}
	}
	return best, true
}

func (s *MultiCriterionState) PreviousRoundArrival(stop StopID) int {
	round := s.round - 1
	if round < 0 {
		round = 0
	}
	return s.bestArrivalInBag(s.bags[round][stop])
}

func (s *MultiCriterionState) TransitStopReached(pattern PatternID, trip TripID, boardStop StopID, boardTime int, alightStop StopID, alightTime int, cost int) bool {
	prevRound := s.round - 1
	if prevRound < 0 {
		prevRound = 0
	}
	baseCost := s.cheapestCostInBag(s.bags[prevRound][boardStop])
	cand := criterionLabel{
		Arrival: alightTime,
		Cost:    baseCost + cost,
		Back: Label{
			FromStop:  boardStop,
			PatternID: pattern,
			TripID:    trip,
			BoardStop: boardStop,
			BoardTime: boardTime,
			Valid:     true,
		},
	}
	bag, added := insertParetoLabel(s.bags[s.round][alightStop], cand, s.calc.Direction())
	if !added {
		return false
	}
	s.bags[s.round][alightStop] = bag
	if best, addedBest := insertParetoLabel(s.bestBags[alightStop], cand, s.calc.Direction()); addedBest {
		s.bestBags[alightStop] = best
	}
	s.roundTouched.add(alightStop)
	s.transitTouched.add(alightStop)
	return true
}

func (s *MultiCriterionState) TransferToStops(from StopID, transfers []TransferLeg) {
	baseBag := s.bags[s.round][from]
	if len(baseBag) == 0 {
		return
	}
	for _, tr := range transfers {
		if tr.FromStop != from {
			continue
		}
		to := tr.ToStop
		for _, entry := range baseBag {
			var arr int
			if s.calc.Direction() == Forward {
				arr = entry.Arrival + tr.Duration
			} else {
				arr = entry.Arrival - tr.Duration
			}
			cand := criterionLabel{
				Arrival: arr,
				Cost:    entry.Cost + tr.Cost,
				Back:    Label{FromStop: from, PatternID: TransferPattern, BoardTime: entry.Arrival, Valid: true},
			}
			bag, added := insertParetoLabel(s.bags[s.round][to], cand, s.calc.Direction())
			if !added {
				continue
			}
			s.bags[s.round][to] = bag
			if best, addedBest := insertParetoLabel(s.bestBags[to], cand, s.calc.Direction()); addedBest {
				s.bestBags[to] = best
			}
			s.roundTouched.add(to)
		}
	}
}

func (s *MultiCriterionState) TransitsForRoundComplete()  {}
func (s *MultiCriterionState) TransfersForRoundComplete() {}

func (s *MultiCriterionState) IterationComplete() {
	snap := multiIterationSnapshot{
		departureTime: s.currentDepartureTime,
		bags:          make([][][]criterionLabel, s.maxRounds+1),
		maxRound:      s.round,
	}
	for k := 0; k <= s.maxRounds; k++ {
		row := make([][]criterionLabel, s.numStops)
		for stop := 0; stop < s.numStops; stop++ {
			row[stop] = append([]criterionLabel(nil), s.bags[k][stop]...)
		}
		snap.bags[k] = row
	}
	s.snapshots = append(s.snapshots, snap)
}

func (s *MultiCriterionState) ExtractPaths(egressLegs []TransferLeg, destinations []StopID) []Path {
	extractor := &pathExtractor{calc: s.calc}
	return extractor.extractMultiCriterion(s.snapshots, egressLegs, destinations)
}
