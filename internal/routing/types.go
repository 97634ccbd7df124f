package routing

import (
	"fmt"
	"time"
)

// RAPTOR Data Structures (optimized for memory/speed)

// StopID identifies a stop within a single search's stop index space,
// in [0, N_stops).
type StopID int32

// PatternID identifies an ordered sequence of stops sharing a stop
// order (what the GTFS world calls a "route" once trips are grouped
// by identical stop sequence).
type PatternID int32

// TripID is an opaque handle into a pattern's trip list. It is only
// unique within its owning pattern, not globally.
type TripID int32

const Infinity = int(1<<31 - 1)

// Stop carries the attributes the ambient layers (HTTP responses, the
// CLI, repository joins) need for display. The search core only ever
// reads ID.
type Stop struct {
	ID   StopID  `json:"id"`
	DBID int     `json:"db_id,omitempty"`
	Code string  `json:"code,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// StopTime holds the arrival and departure time, in seconds past the
// search day's reference midnight, of one trip at one position of its
// pattern.
type StopTime struct {
	Arrival   int `json:"arrival"`
	Departure int `json:"departure"`
}

// Trip is one concrete scheduled run of a Pattern.
//
// Invariant: len(StopTimes) equals the owning Pattern's stop count,
// times are non-decreasing along the pattern, and each
// StopTimes[p].Arrival <= StopTimes[p].Departure.
type Trip struct {
	ID        TripID     `json:"id"`
	StopTimes []StopTime `json:"stop_times"`
	ServiceID string     `json:"service_id"` // "weekday", "saturday", "sunday", ...
	InService bool       `json:"in_service"`
}

// TimesAtPosition returns the trip's arrival/departure at pattern
// position p.
func (t *Trip) TimesAtPosition(p int) (arrival, departure int) {
	st := t.StopTimes[p]
	return st.Arrival, st.Departure
}

// Pattern is an ordered sequence of stops sharing a stop order, plus
// the trips that run it.
type Pattern struct {
	ID    PatternID `json:"id"`
	Stops []StopID  `json:"stops"`
	Trips []Trip    `json:"trips"`

	LineID    int    `json:"line_id"`
	LineCode  string `json:"line_code"`
	LineType  string `json:"line_type"`
	LineColor string `json:"line_color"`

	// FareCents is an optional secondary criterion consumed by
	// MultiCriterionState (McRAPTOR); zero for engines that only
	// minimize arrival time and transfers.
	FareCents int `json:"fare_cents,omitempty"`
}

func (p *Pattern) NumStops() int { return len(p.Stops) }

func (p *Pattern) StopAt(position int) StopID { return p.Stops[position] }

// IndexOf returns the position of stop within the pattern, or -1 if
// the pattern does not visit it.
func (p *Pattern) IndexOf(stop StopID) int {
	for i, s := range p.Stops {
		if s == stop {
			return i
		}
	}
	return -1
}

// TransferLeg is an edge of fixed duration between two stops. Access
// and egress legs use the same shape; the "street" endpoint (origin
// or destination) is implicit in how the leg is used by the worker,
// not in the type.
type TransferLeg struct {
	FromStop StopID `json:"from_stop"`
	ToStop   StopID `json:"to_stop"`
	Duration int    `json:"time_seconds"`

	// Cost is an optional secondary criterion (e.g. toll, fare),
	// consumed only by MultiCriterionState.
	Cost int `json:"cost,omitempty"`
}

// TimeToSeconds converts a wall-clock time to seconds since midnight
// local to that time's calendar day.
func TimeToSeconds(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func SecondsToClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
