package routing

// StreetStop is the sentinel "from" stop recorded for the very first
// leg of a journey: it marks that the leg is the access leg from the
// street network, not a ride between two timetable stops.
const StreetStop StopID = -1

// Leg is one ride or transfer of a reconstructed journey.
type Leg struct {
	BoardStop  StopID
	BoardTime  int
	AlightStop StopID
	AlightTime int
	IsTransfer bool
	Pattern    PatternID
	Trip       TripID
}

// Path is a complete journey: access leg, zero or more transit/transfer
// legs, egress leg, and its computed totals.
type Path struct {
	AccessLeg         TransferLeg
	Legs              []Leg
	EgressLeg         TransferLeg
	DepartureTime     int
	ArrivalTime       int
	Duration          int
	NumberOfTransfers int
	Cost              int
}

// pathExtractor is the §4.6 Path Extractor (C6): it walks back-pointers
// from every reached destination stop across every retained
// iteration snapshot, producing one journey per (destination, round)
// entry on the Pareto frontier, unified across iterations and
// de-duplicated by (departure, arrival, transfers).
type pathExtractor struct {
	calc *Calculator
}

const maxReconstructionHops = 64

func (e *pathExtractor) extractSingleCriterion(snapshots []iterationSnapshot, egressLegs []TransferLeg, destinations []StopID) []Path {
	var out []Path
	seen := make(map[[3]int]bool)
	worst := e.calc.WorstTime()

	for _, snap := range snapshots {
		for k := 1; k <= snap.maxRound; k++ {
			for _, dest := range destinations {
				arr := snap.roundArrivals[k][dest]
				if arr == worst {
					continue
				}
				if snap.roundArrivals[k][dest] == snap.roundArrivals[k-1][dest] {
					continue // no improvement this round at this stop
				}
				for _, egress := range egressLegs {
					if egress.FromStop != dest {
						continue
					}
					total := e.applyEgress(arr, egress.Duration)
					legs, accessLeg := e.reconstruct(snap.roundArrivals, snap.labels, k, dest, snap.departureTime)

					p := Path{
						AccessLeg:         accessLeg,
						Legs:              legs,
						EgressLeg:         egress,
						DepartureTime:     snap.departureTime,
						ArrivalTime:       total,
						NumberOfTransfers: numberOfTransfers(k),
					}
					p.Duration = absInt(p.ArrivalTime - p.DepartureTime)

					key := [3]int{p.DepartureTime, p.ArrivalTime, p.NumberOfTransfers}
					if seen[key] {
						continue
					}
					seen[key] = true
					out = append(out, p)
				}
			}
		}
	}
	return pruneDominated(out, e.calc)
}

func (e *pathExtractor) extractMultiCriterion(snapshots []multiIterationSnapshot, egressLegs []TransferLeg, destinations []StopID) []Path {
	var out []Path
	seen := make(map[[4]int]bool)

	for _, snap := range snapshots {
		for k := 1; k <= snap.maxRound; k++ {
			for _, dest := range destinations {
				bag := snap.bags[k][dest]
				for _, entry := range bag {
					for _, egress := range egressLegs {
						if egress.FromStop != dest {
							continue
						}
						total := e.applyEgress(entry.Arrival, egress.Duration)
						legs, accessLeg := e.reconstructMulti(snap.bags, k, dest, snap.departureTime, entry)

						p := Path{
							AccessLeg:         accessLeg,
							Legs:              legs,
							EgressLeg:         egress,
							DepartureTime:     snap.departureTime,
							ArrivalTime:       total,
							NumberOfTransfers: numberOfTransfers(k),
							Cost:              entry.Cost + egress.Cost,
						}
						p.Duration = absInt(p.ArrivalTime - p.DepartureTime)

						key := [4]int{p.DepartureTime, p.ArrivalTime, p.NumberOfTransfers, p.Cost}
						if seen[key] {
							continue
						}
						seen[key] = true
						out = append(out, p)
					}
				}
			}
		}
	}
	return pruneDominated(out, e.calc)
}

func (e *pathExtractor) applyEgress(arrival, duration int) int {
	if e.calc.Direction() == Forward {
		return arrival + duration
	}
	return arrival - duration
}

// reconstruct walks back-pointers from (round, stop) to the access
// leg, in the teacher's style: a round that made no improvement at a
// stop is skipped; a transfer label stays in the same round, a
// transit label consumes one round.
func (e *pathExtractor) reconstruct(roundArrivals [][]int, labels [][]Label, round int, stop StopID, departureTime int) ([]Leg, TransferLeg) {
	var legs []Leg
	for hops := 0; round > 0 && hops < maxReconstructionHops; hops++ {
		if roundArrivals[round][stop] == roundArrivals[round-1][stop] {
			round--
			continue
		}
		label := labels[round][stop]
		if !label.Valid {
			round--
			continue
		}
		if label.PatternID == TransferPattern {
			legs = append([]Leg{{
				BoardStop:  label.FromStop,
				BoardTime:  label.BoardTime,
				AlightStop: stop,
				AlightTime: roundArrivals[round][stop],
				IsTransfer: true,
			}}, legs...)
			stop = label.FromStop
			continue
		}
		legs = append([]Leg{{
			BoardStop:  label.BoardStop,
			BoardTime:  label.BoardTime,
			AlightStop: stop,
			AlightTime: roundArrivals[round][stop],
			Pattern:    label.PatternID,
			Trip:       label.TripID,
		}}, legs...)
		stop = label.BoardStop
		round--
	}
	accessLeg := TransferLeg{FromStop: StreetStop, ToStop: stop, Duration: absInt(roundArrivals[0][stop] - departureTime)}
	return legs, accessLeg
}

// reconstructMulti walks the back-pointer chain starting at the
// specific entry a caller read out of bags[round][stop] — not an
// arbitrary bag member. Each hop must re-locate, in the predecessor
// bag, the exact entry that this entry's label was built from: a
// transit hop's cost came from the cheapest entry in the board stop's
// previous-round bag (cheapestEntryInBag, mirroring
// MultiCriterionState.TransitStopReached), while a transfer hop's
// Back.BoardTime is literally the predecessor entry's Arrival
// (mirroring MultiCriterionState.TransferToStops). Picking the wrong
// predecessor would still produce a Leg with the right arrival/board
// times (those are stored directly in entry/label) but a wrong
// earlier-leg chain beyond it.
func (e *pathExtractor) reconstructMulti(bags [][][]criterionLabel, round int, stop StopID, departureTime int, start criterionLabel) ([]Leg, TransferLeg) {
	var legs []Leg
	entry := start
	for hops := 0; round > 0 && hops < maxReconstructionHops; hops++ {
		label := entry.Back
		if !label.Valid {
			round--
			if next, ok := bestMatchingEntry(bags[round][stop]); ok {
				entry = next
			}
			continue
		}
		if label.PatternID == TransferPattern {
			legs = append([]Leg{{
				BoardStop:  label.FromStop,
				BoardTime:  label.BoardTime,
				AlightStop: stop,
				AlightTime: entry.Arrival,
				IsTransfer: true,
			}}, legs...)
			stop = label.FromStop
			next, ok := entryWithArrival(bags[round][stop], label.BoardTime)
			if !ok {
				break
			}
			entry = next
			continue
		}
		legs = append([]Leg{{
			BoardStop:  label.BoardStop,
			BoardTime:  label.BoardTime,
			AlightStop: stop,
			AlightTime: entry.Arrival,
			Pattern:    label.PatternID,
			Trip:       label.TripID,
		}}, legs...)
		stop = label.BoardStop
		round--
		next, ok := cheapestEntryInBag(bags[round][stop])
		if !ok {
			break
		}
		entry = next
	}
	return legs, TransferLeg{FromStop: StreetStop, ToStop: stop, Duration: absInt(entry.Arrival - departureTime)}
}

// entryWithArrival finds the bag entry whose Arrival equals target,
// the exact match TransferToStops guarantees exists for the entry a
// transfer leg was built from (Back.BoardTime == entry.Arrival).
func entryWithArrival(bag []criterionLabel, target int) (criterionLabel, bool) {
	for _, l := range bag {
		if l.Arrival == target {
			return l, true
		}
	}
	return criterionLabel{}, false
}

// bestMatchingEntry picks an arbitrary, deterministic (first) entry
// from a Pareto bag to continue reconstruction from when no specific
// predecessor can be identified (an invalid/seed label) — any entry in
// the bag is by construction a non-dominated way of having reached
// this stop by this round.
func bestMatchingEntry(bag []criterionLabel) (criterionLabel, bool) {
	if len(bag) == 0 {
		return criterionLabel{}, false
	}
	return bag[0], true
}

func numberOfTransfers(round int) int {
	if round <= 1 {
		return 0
	}
	return round - 1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// pruneDominated removes any path that is componentwise no better on
// (arrival time, transfers[, cost]) than, and strictly worse on at
// least one of, another returned path (§8 property 4).
func pruneDominated(paths []Path, calc *Calculator) []Path {
	keep := make([]bool, len(paths))
	for i := range paths {
		keep[i] = true
	}
	for i, a := range paths {
		if !keep[i] {
			continue
		}
		for j, b := range paths {
			if i == j || !keep[j] {
				continue
			}
			if pathDominates(b, a, calc) {
				keep[i] = false
				break
			}
		}
	}
	out := make([]Path, 0, len(paths))
	for i, p := range paths {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func pathDominates(a, b Path, calc *Calculator) bool {
	var arrNoWorse, arrBetter bool
	if calc.Direction() == Forward {
		arrNoWorse = a.ArrivalTime <= b.ArrivalTime
		arrBetter = a.ArrivalTime < b.ArrivalTime
	} else {
		arrNoWorse = a.ArrivalTime >= b.ArrivalTime
		arrBetter = a.ArrivalTime > b.ArrivalTime
	}
	transfersNoWorse := a.NumberOfTransfers <= b.NumberOfTransfers
	transfersBetter := a.NumberOfTransfers < b.NumberOfTransfers
	costNoWorse := a.Cost <= b.Cost
	costBetter := a.Cost < b.Cost
	return arrNoWorse && transfersNoWorse && costNoWorse && (arrBetter || transfersBetter || costBetter)
}
