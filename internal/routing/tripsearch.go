package routing

// TripSearch finds, for a pattern and a stop position, the earliest
// boardable trip (forward) or latest alightable trip (reverse) — the
// per-pattern inner kernel that dominates runtime (C3).
//
// A pattern sweep calls Board/Alight once per touched stop position,
// each against that stop's own previous-round arrival. Those target
// times are not monotone across positions within a single sweep —
// only across the outer Range-RAPTOR loop's departure minutes — so
// every query rescans the trip list from the start (forward) or end
// (reverse) rather than resuming from where the previous query left
// off.
//
// Invariants relied on: the trips not skipped by skip appear in a
// pattern's Trips slice in departure-time order (Board/Alight), and a
// trip's ID equals its index in that slice (TripAt).
type TripSearch struct {
	pattern *Pattern
	dir     Direction
	skip    func(TripID) bool
}

func newTripSearch(pattern *Pattern, dir Direction, skip func(TripID) bool) *TripSearch {
	return &TripSearch{pattern: pattern, dir: dir, skip: skip}
}

// Board returns the earliest in-service trip departing position
// >= targetTime, skipping any trip for which skip returns true, or
// (TripID, false) if none exists.
func (ts *TripSearch) Board(position int, targetTime int) (TripID, int, bool) {
	trips := ts.pattern.Trips
	for i := range trips {
		t := &trips[i]
		if ts.skip != nil && ts.skip(t.ID) {
			continue
		}
		dep := t.StopTimes[position].Departure
		if dep >= targetTime {
			return t.ID, dep, true
		}
	}
	return 0, 0, false
}

// Alight returns the latest in-service trip arriving at position
// <= targetTime (the reverse-search symmetric counterpart of Board).
func (ts *TripSearch) Alight(position int, targetTime int) (TripID, int, bool) {
	trips := ts.pattern.Trips
	for i := len(trips) - 1; i >= 0; i-- {
		t := &trips[i]
		if ts.skip != nil && ts.skip(t.ID) {
			continue
		}
		arr := t.StopTimes[position].Arrival
		if arr <= targetTime {
			return t.ID, arr, true
		}
	}
	return 0, 0, false
}

// Search dispatches to Board or Alight by direction; the two or three
// hotspots that must know about direction are isolated here and in
// Calculator, never duplicated in the worker loop.
func (ts *TripSearch) Search(position int, targetTime int) (TripID, int, bool) {
	if ts.dir == Forward {
		return ts.Board(position, targetTime)
	}
	return ts.Alight(position, targetTime)
}

// TripAt returns the trip schedule for a previously returned TripID.
func (ts *TripSearch) TripAt(id TripID) *Trip {
	return &ts.pattern.Trips[id]
}
