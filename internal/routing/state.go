package routing

// Label is the back-pointer recorded when a stop's arrival improves
// in a round: enough to reconstruct the journey segment that led to
// it. PatternID == TransferPattern marks a transfer (not a transit)
// leg; TripID is meaningless in that case.
type Label struct {
	FromStop  StopID
	PatternID PatternID
	TripID    TripID
	BoardStop StopID
	BoardTime int
	Valid     bool
}

// TransferPattern is the sentinel PatternID used in a Label to mark
// that the leg leading to a stop was a transfer, not a ride.
const TransferPattern PatternID = -1

// State is the §4.4 Worker State interface. Two concrete variants
// implement it: SingleCriterionState (scalar best-arrival per round)
// and MultiCriterionState (a Pareto bag per round). The Worker (C5)
// is written entirely against this interface so neither variant needs
// to subclass the other.
type State interface {
	SetupIteration(departureTime int)
	SetInitialTimeForIteration(access TransferLeg, departureTime int)
	IsNewRoundAvailable() bool
	PrepareForNextRound()
	StopsTouchedPreviousRound() []StopID
	StopsTouchedByTransitCurrentRound() []StopID
	// PreviousRoundArrival returns the best arrival at stop as of the
	// round just before the current one (round()-1), or the
	// direction's worst-time sentinel if unreached.
	PreviousRoundArrival(stop StopID) int
	// TransitStopReached attempts to improve alightStop's current-round
	// arrival via a ride boarded at boardStop/boardTime. cost is an
	// optional secondary criterion (e.g. fare) consumed only by
	// multi-criterion state; single-criterion state ignores it.
	TransitStopReached(pattern PatternID, trip TripID, boardStop StopID, boardTime int, alightStop StopID, alightTime int, cost int) bool
	TransferToStops(from StopID, transfers []TransferLeg)
	TransitsForRoundComplete()
	TransfersForRoundComplete()
	IterationComplete()
	ExtractPaths(egressLegs []TransferLeg, destinations []StopID) []Path
	Round() int
}

// touchedSet is a stop-id accumulator paired with a per-stop boolean
// membership slice, so membership tests are O(1) and clearing resets
// only the entries that were set instead of the whole stop space
// (Design Notes §9).
type touchedSet struct {
	ids []StopID
	in  []bool
}

func newTouchedSet(numStops int) *touchedSet {
	return &touchedSet{in: make([]bool, numStops)}
}

func (s *touchedSet) add(stop StopID) {
	if s.in[stop] {
		return
	}
	s.in[stop] = true
	s.ids = append(s.ids, stop)
}

func (s *touchedSet) reset() {
	for _, id := range s.ids {
		s.in[id] = false
	}
	s.ids = s.ids[:0]
}

func (s *touchedSet) list() []StopID { return s.ids }

func (s *touchedSet) len() int { return len(s.ids) }
