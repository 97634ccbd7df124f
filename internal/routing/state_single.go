package routing

// SingleCriterionState is the §4.4 single-criterion Worker State: it
// tracks, per stop, the best arrival across all rounds ("best known")
// plus per-round arrivals used for path reconstruction. It applies
// the RAPTOR target-pruning rule: an update at round k/stop s is
// accepted only if it beats both the existing round-k entry and the
// global best-known arrival, which is what makes Range-RAPTOR state
// reuse across departure minutes correct (§4.4, §8 property 2).
type SingleCriterionState struct {
	calc      *Calculator
	numStops  int
	maxRounds int

	round int

	bestKnown     []int
	roundArrivals [][]int
	labels        [][]Label

	prevRoundTouched []StopID
	roundTouched     *touchedSet
	transitTouched   *touchedSet

	currentDepartureTime int
	snapshots             []iterationSnapshot
}

type iterationSnapshot struct {
	departureTime int
	roundArrivals [][]int
	labels        [][]Label
	maxRound      int
}

func NewSingleCriterionState(calc *Calculator, numStops, maxRounds int) *SingleCriterionState {
	s := &SingleCriterionState{
		calc:      calc,
		numStops:  numStops,
		maxRounds: maxRounds,
	}
	s.bestKnown = make([]int, numStops)
	worst := calc.WorstTime()
	for i := range s.bestKnown {
		s.bestKnown[i] = worst
	}
	s.roundArrivals = make([][]int, maxRounds+1)
	s.labels = make([][]Label, maxRounds+1)
	for k := 0; k <= maxRounds; k++ {
		row := make([]int, numStops)
		for i := range row {
			row[i] = worst
		}
		s.roundArrivals[k] = row
		s.labels[k] = make([]Label, numStops)
	}
	s.roundTouched = newTouchedSet(numStops)
	s.transitTouched = newTouchedSet(numStops)
	return s
}

func (s *SingleCriterionState) Round() int { return s.round }

// SetupIteration begins a new outer-loop minute. Per §4.4 it does NOT
// clear bestKnown/roundArrivals/labels — those carry Range-RAPTOR
// state across minutes — it only resets per-iteration scratch.
func (s *SingleCriterionState) SetupIteration(departureTime int) {
	s.round = 0
	s.currentDepartureTime = departureTime
	s.roundTouched.reset()
	s.transitTouched.reset()
	s.prevRoundTouched = s.prevRoundTouched[:0]
}

func (s *SingleCriterionState) SetInitialTimeForIteration(access TransferLeg, departureTime int) {
	t := departureTime
	if s.calc.Direction() == Forward {
		t += access.Duration
	} else {
		t -= access.Duration
	}
	stop := access.ToStop
	if !s.calc.IsBetter(t, s.roundArrivals[0][stop]) {
		return
	}
	s.roundArrivals[0][stop] = t
	if s.calc.IsBetter(t, s.bestKnown[stop]) {
		s.bestKnown[stop] = t
	}
	s.labels[0][stop] = Label{FromStop: stop, PatternID: TransferPattern, BoardTime: t, Valid: true}
	s.roundTouched.add(stop)
}

func (s *SingleCriterionState) IsNewRoundAvailable() bool {
	return s.roundTouched.len() > 0 && s.round < s.maxRounds
}

func (s *SingleCriterionState) PrepareForNextRound() {
	s.round++
	// Baseline: a round's arrivals start from the previous round's
	// (a stop not improved this round keeps its prior best).
	copy(s.roundArrivals[s.round], s.roundArrivals[s.round-1])

	s.prevRoundTouched = append(s.prevRoundTouched[:0], s.roundTouched.list()...)
	s.roundTouched.reset()
	s.transitTouched.reset()
}

func (s *SingleCriterionState) StopsTouchedPreviousRound() []StopID { return s.prevRoundTouched }

func (s *SingleCriterionState) StopsTouchedByTransitCurrentRound() []StopID {
	return s.transitTouched.list()
}

func (s *SingleCriterionState) PreviousRoundArrival(stop StopID) int {
	if s.round == 0 {
		return s.roundArrivals[0][stop]
	}
	return s.roundArrivals[s.round-1][stop]
}

// TransitStopReached attempts to improve the current round's arrival
// at alightStop via a ride that boarded at boardStop/boardTime on
// trip. It applies target pruning: the update is accepted only if
// alightTime beats both the existing round arrival and bestKnown.
func (s *SingleCriterionState) TransitStopReached(pattern PatternID, trip TripID, boardStop StopID, boardTime int, alightStop StopID, alightTime int, cost int) bool {
	if !s.calc.IsBetter(alightTime, s.roundArrivals[s.round][alightStop]) {
		return false
	}
	if !s.calc.IsBetter(alightTime, s.bestKnown[alightStop]) {
		return false
	}
	s.roundArrivals[s.round][alightStop] = alightTime
	s.bestKnown[alightStop] = alightTime
	s.labels[s.round][alightStop] = Label{
		FromStop:  boardStop,
		PatternID: pattern,
		TripID:    trip,
		BoardStop: boardStop,
		BoardTime: boardTime,
		Valid:     true,
	}
	s.roundTouched.add(alightStop)
	s.transitTouched.add(alightStop)
	return true
}

// TransferToStops relaxes every outgoing transfer from a stop that
// was reached by transit this round. Transfers do not compound
// within a round: the to-stop's improvement is recorded in
// roundTouched only, not transitTouched, so a subsequent call within
// the same round's transfer phase never walks out of it again.
func (s *SingleCriterionState) TransferToStops(from StopID, transfers []TransferLeg) {
	base := s.roundArrivals[s.round][from]
	for _, tr := range transfers {
		if tr.FromStop != from {
			continue
		}
		var cand int
		if s.calc.Direction() == Forward {
			cand = base + tr.Duration
		} else {
			cand = base - tr.Duration
		}
		to := tr.ToStop
		if !s.calc.IsBetter(cand, s.roundArrivals[s.round][to]) {
			continue
		}
		if !s.calc.IsBetter(cand, s.bestKnown[to]) {
			continue
		}
		s.roundArrivals[s.round][to] = cand
		s.bestKnown[to] = cand
		s.labels[s.round][to] = Label{
			FromStop:  from,
			PatternID: TransferPattern,
			BoardTime: base,
			Valid:     true,
		}
		s.roundTouched.add(to)
	}
}

func (s *SingleCriterionState) TransitsForRoundComplete()  {}
func (s *SingleCriterionState) TransfersForRoundComplete() {}

// IterationComplete snapshots the per-round arrivals and labels
// before the next (earlier-departure, forward search) iteration is
// free to overwrite them further. Range-RAPTOR deliberately does NOT
// reset roundArrivals/labels between iterations — that is what lets
// later minutes seed earlier ones — so anything path extraction will
// need from this minute must be copied out now.
func (s *SingleCriterionState) IterationComplete() {
	snap := iterationSnapshot{
		departureTime: s.currentDepartureTime,
		roundArrivals: make([][]int, s.maxRounds+1),
		labels:        make([][]Label, s.maxRounds+1),
		maxRound:      s.round,
	}
	for k := 0; k <= s.maxRounds; k++ {
		snap.roundArrivals[k] = append([]int(nil), s.roundArrivals[k]...)
		snap.labels[k] = append([]Label(nil), s.labels[k]...)
	}
	s.snapshots = append(s.snapshots, snap)
}

func (s *SingleCriterionState) ExtractPaths(egressLegs []TransferLeg, destinations []StopID) []Path {
	extractor := &pathExtractor{calc: s.calc}
	return extractor.extractSingleCriterion(s.snapshots, egressLegs, destinations)
}
