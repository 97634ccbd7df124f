package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleDirectTrip(t *testing.T) {
	provider := singleTripProvider(true)
	access := []TransferLeg{{FromStop: StreetStop, ToStop: 0, Duration: 180}}  // 3 min walk to stop A
	egress := []TransferLeg{{FromStop: 1, ToStop: StreetStop, Duration: 120}} // 2 min walk from stop B

	paths, err := runForward(provider, access, egress, clock(8, 50), clock(8, 50), 12)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	p := paths[0]
	assert.Equal(t, 0, p.NumberOfTransfers)
	assert.Equal(t, clock(8, 50), p.DepartureTime)
	assert.Equal(t, clock(9, 32), p.ArrivalTime)
	assert.Equal(t, clock(9, 32)-clock(8, 50), p.Duration)

	// Back-pointer well-formedness: the single transit leg must match
	// the timetable exactly (property 6).
	require.Len(t, p.Legs, 1)
	leg := p.Legs[0]
	assert.False(t, leg.IsTransfer)
	assert.Equal(t, StopID(0), leg.BoardStop)
	assert.Equal(t, clock(9, 0), leg.BoardTime)
	assert.Equal(t, StopID(1), leg.AlightStop)
	assert.Equal(t, clock(9, 30), leg.AlightTime)
}

func TestOutOfServiceTripNeverAppears(t *testing.T) {
	provider := singleTripProvider(false)
	access := []TransferLeg{{FromStop: StreetStop, ToStop: 0, Duration: 180}}
	egress := []TransferLeg{{FromStop: 1, ToStop: StreetStop, Duration: 120}}

	paths, err := runForward(provider, access, egress, clock(8, 50), clock(8, 50), 12)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDisconnectedStopsYieldNoPath(t *testing.T) {
	provider := disconnectedProvider()
	access := []TransferLeg{{FromStop: StreetStop, ToStop: 0, Duration: 0}}
	egress := []TransferLeg{{FromStop: 1, ToStop: StreetStop, Duration: 0}}

	paths, err := runForward(provider, access, egress, clock(7, 0), clock(7, 0), 12)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestHubTransferParetoSet(t *testing.T) {
	provider := hubProvider()
	access := []TransferLeg{{FromStop: StreetStop, ToStop: 0, Duration: 0}} // origin
	egress := []TransferLeg{{FromStop: 1, ToStop: StreetStop, Duration: 0}} // destination

	paths, err := runForward(provider, access, egress, clock(8, 0), clock(8, 0), 12)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	byTransfers := make(map[int]Path, 2)
	for _, p := range paths {
		byTransfers[p.NumberOfTransfers] = p
	}

	direct, ok := byTransfers[0]
	require.True(t, ok, "expected a zero-transfer path in the Pareto set")
	assert.Equal(t, clock(9, 10), direct.ArrivalTime)
	assert.Equal(t, 70*60, direct.Duration)

	viaHub, ok := byTransfers[1]
	require.True(t, ok, "expected a one-transfer path in the Pareto set")
	assert.Equal(t, clock(8, 55), viaHub.ArrivalTime)
	assert.Equal(t, 55*60, viaHub.Duration)

	// Neither path may dominate the other (property 4): the direct
	// ride wins on transfers, the hub ride wins on arrival time.
	assert.True(t, direct.ArrivalTime > viaHub.ArrivalTime)
	assert.True(t, direct.NumberOfTransfers < viaHub.NumberOfTransfers)
}

func TestRangeSearchReusesStateAcrossMinutes(t *testing.T) {
	provider := hubProvider()
	access := []TransferLeg{{FromStop: StreetStop, ToStop: 0, Duration: 0}}
	egress := []TransferLeg{{FromStop: 1, ToStop: StreetStop, Duration: 0}}

	paths, err := runForward(provider, access, egress, clock(7, 0), clock(8, 0), 12)
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	best := Infinity
	for _, p := range paths {
		if p.ArrivalTime < best {
			best = p.ArrivalTime
		}
	}
	assert.Equal(t, clock(8, 55), best)
}

func TestForwardReverseEquivalence(t *testing.T) {
	provider := hubProvider()

	fwdAccess := []TransferLeg{{FromStop: StreetStop, ToStop: 0, Duration: 0}}
	fwdEgress := []TransferLeg{{FromStop: 1, ToStop: StreetStop, Duration: 0}}
	fwdPaths, err := runForward(provider, fwdAccess, fwdEgress, clock(8, 0), clock(8, 0), 12)
	require.NoError(t, err)

	var forwardBest Path
	found := false
	for _, p := range fwdPaths {
		if !found || p.ArrivalTime < forwardBest.ArrivalTime {
			forwardBest = p
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, clock(8, 55), forwardBest.ArrivalTime)
	assert.Equal(t, 1, forwardBest.NumberOfTransfers)

	// Reverse search: seed at the destination with the forward
	// optimum's arrival as the target deadline, egress back to the
	// origin. A correct reverse search reconstructs the same journey.
	revAccess := []TransferLeg{{FromStop: StreetStop, ToStop: 1, Duration: 0}}
	revEgress := []TransferLeg{{FromStop: 0, ToStop: StreetStop, Duration: 0}}
	revPaths, err := runReverse(provider, revAccess, revEgress, clock(8, 55), clock(8, 55), 12)
	require.NoError(t, err)
	require.NotEmpty(t, revPaths)

	var reverseBest Path
	found = false
	for _, p := range revPaths {
		if !found || p.NumberOfTransfers < reverseBest.NumberOfTransfers {
			reverseBest = p
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, forwardBest.Duration, reverseBest.Duration)
	assert.Equal(t, forwardBest.NumberOfTransfers, reverseBest.NumberOfTransfers)
}
