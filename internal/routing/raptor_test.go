package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineFindRouteReturnsEarliestArrival(t *testing.T) {
	engine := NewEngine(hubProvider())
	source := map[StopID]int{0: 0}
	target := map[StopID]bool{1: true}

	journey, err := engine.FindRoute(source, target, clock(8, 0), "weekday")
	require.NoError(t, err)
	require.NotNil(t, journey)

	assert.Equal(t, 1, journey.NumberOfTransfers)
	assert.Equal(t, "08:55:00", journey.ArrivalTime)
	assert.Equal(t, 55*60, journey.DurationSeconds)
}

func TestEngineFindRouteNoPathReturnsNil(t *testing.T) {
	engine := NewEngine(disconnectedProvider())
	source := map[StopID]int{0: 0}
	target := map[StopID]bool{1: true}

	journey, err := engine.FindRoute(source, target, clock(8, 0), "weekday")
	require.NoError(t, err)
	assert.Nil(t, journey)
}

func TestEngineSearchParetoAgreesWithSingleCriterionOnNeutralCost(t *testing.T) {
	engine := NewEngine(hubProvider())
	source := map[StopID]int{0: 0}
	target := map[StopID]bool{1: true}

	single, err := engine.Search(source, target, clock(8, 0), clock(8, 0), "weekday")
	require.NoError(t, err)
	multi, err := engine.SearchPareto(source, target, clock(8, 0), clock(8, 0), "weekday")
	require.NoError(t, err)

	require.Len(t, single, 2)
	require.Len(t, multi, 2)

	byTransfers := func(paths []Path) map[int]Path {
		out := make(map[int]Path, len(paths))
		for _, p := range paths {
			out[p.NumberOfTransfers] = p
		}
		return out
	}
	singleByTransfers := byTransfers(single)
	multiByTransfers := byTransfers(multi)

	for transfers, sp := range singleByTransfers {
		mp, ok := multiByTransfers[transfers]
		require.True(t, ok)
		assert.Equal(t, sp.ArrivalTime, mp.ArrivalTime)
		assert.Equal(t, 0, mp.Cost) // no fares set on the fixture, so cost stays neutral
	}

	journeys := make([]*Journey, len(multi))
	for i, p := range multi {
		journeys[i] = engine.ToJourney(p)
	}
	assert.Len(t, journeys, 2)
}
