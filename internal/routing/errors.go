package routing

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidRequest wraps a request validation failure (§7): negative
// times, empty access legs, a negative transfer cap, and similar.
// These are caller mistakes, caught before the search loop ever runs.
type ErrInvalidRequest struct {
	Reason string
}

func (e *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("invalid raptor request: %s", e.Reason)
}

// ErrProviderContract marks a programmer error in a Provider
// implementation: a pattern's stop count disagreeing between calls,
// or a trip's times violating monotonicity. These are fail-loud, not
// recoverable.
type ErrProviderContract struct {
	Entity string
	Reason string
}

func (e *ErrProviderContract) Error() string {
	return fmt.Sprintf("provider contract violation on %s: %s", e.Entity, e.Reason)
}

func validateRequest(req Request, tuning TuningParameters) error {
	if len(req.AccessLegs) == 0 {
		return errors.Wrap(&ErrInvalidRequest{Reason: "access_legs must not be empty"}, "validating request")
	}
	if len(req.EgressLegs) == 0 {
		return errors.Wrap(&ErrInvalidRequest{Reason: "egress_legs must not be empty"}, "validating request")
	}
	if req.EarliestDeparture < 0 || req.LatestDeparture < 0 {
		return errors.Wrap(&ErrInvalidRequest{Reason: "departure times must be non-negative"}, "validating request")
	}
	if req.LatestDeparture < req.EarliestDeparture {
		return errors.Wrap(&ErrInvalidRequest{Reason: "latest_departure must be >= earliest_departure"}, "validating request")
	}
	if tuning.MaxNumberOfTransfers < 0 {
		return errors.Wrap(&ErrInvalidRequest{Reason: "max_number_of_transfers must be >= 0"}, "validating request")
	}
	if tuning.BoardSlackSeconds < 0 || tuning.AlightSlackSeconds < 0 {
		return errors.Wrap(&ErrInvalidRequest{Reason: "slack values must be non-negative"}, "validating request")
	}
	for _, leg := range req.AccessLegs {
		if leg.Duration < 0 {
			return errors.Wrap(&ErrInvalidRequest{Reason: "access leg duration must be non-negative"}, "validating request")
		}
	}
	for _, leg := range req.EgressLegs {
		if leg.Duration < 0 {
			return errors.Wrap(&ErrInvalidRequest{Reason: "egress leg duration must be non-negative"}, "validating request")
		}
	}
	return nil
}

// validatePattern checks the §7 provider-contract invariants for one
// pattern: trip stop-time counts matching the pattern's stop count,
// and non-decreasing, arrival<=departure times along each trip.
func validatePattern(p *Pattern) error {
	for ti := range p.Trips {
		t := &p.Trips[ti]
		if len(t.StopTimes) != len(p.Stops) {
			return &ErrProviderContract{
				Entity: fmt.Sprintf("pattern %d trip %d", p.ID, t.ID),
				Reason: fmt.Sprintf("stop_times length %d does not match pattern stop count %d", len(t.StopTimes), len(p.Stops)),
			}
		}
		prevDeparture := -1
		for pos, st := range t.StopTimes {
			if st.Arrival > st.Departure {
				return &ErrProviderContract{
					Entity: fmt.Sprintf("pattern %d trip %d position %d", p.ID, t.ID, pos),
					Reason: "arrival time is after departure time",
				}
			}
			if st.Arrival < prevDeparture {
				return &ErrProviderContract{
					Entity: fmt.Sprintf("pattern %d trip %d position %d", p.ID, t.ID, pos),
					Reason: "times are not non-decreasing along the pattern",
				}
			}
			prevDeparture = st.Departure
		}
	}
	return nil
}
