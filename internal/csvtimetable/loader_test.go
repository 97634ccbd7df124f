package csvtimetable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/morocco-transport/internal/routing"
)

func writeFixture(t *testing.T, dir string, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestLoadBuildsProviderFromFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stops.csv", "stop_id,code,name,lat,lon\n"+
		"1,A,Stop A,33.57,-7.58\n"+
		"2,B,Stop B,33.58,-7.60\n")
	writeFixture(t, dir, "patterns.csv", "pattern_id,line_id,line_code,line_type,line_color,fare_cents,stop_ids\n"+
		"10,1,L1,bus,#ff0000,500,1|2\n")
	writeFixture(t, dir, "trips.csv", "pattern_id,service_id,in_service,stop_times\n"+
		"10,weekday,true,32400:32400|34200:34200\n")
	writeFixture(t, dir, "transfers.csv", "from_stop,to_stop,duration_seconds,cost\n"+
		"2,1,90,0\n")

	provider, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, provider)

	assert.Equal(t, 2, provider.NumStops())

	stopA, ok := provider.StopIDForDBID(1)
	require.True(t, ok)
	stopB, ok := provider.StopIDForDBID(2)
	require.True(t, ok)

	require.NoError(t, provider.Init("weekday"))
	patternIDs := provider.PatternsTouching([]routing.StopID{stopA})
	require.Len(t, patternIDs, 1)

	pattern := provider.Pattern(patternIDs[0])
	require.NotNil(t, pattern)
	assert.Equal(t, "L1", pattern.LineCode)
	assert.Equal(t, 500, pattern.FareCents)
	require.Len(t, pattern.Trips, 1)
	assert.True(t, pattern.Trips[0].InService)
	assert.Equal(t, "weekday", pattern.Trips[0].ServiceID)
	require.Len(t, pattern.Trips[0].StopTimes, 2)
	assert.Equal(t, 32400, pattern.Trips[0].StopTimes[0].Departure)
	assert.Equal(t, 34200, pattern.Trips[0].StopTimes[1].Arrival)

	transfers := provider.Transfers(stopB)
	require.Len(t, transfers, 1)
	assert.Equal(t, stopA, transfers[0].ToStop)
	assert.Equal(t, 90, transfers[0].Duration)
}

func TestLoadRejectsUnknownPatternReference(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stops.csv", "stop_id,code,name,lat,lon\n1,A,Stop A,0,0\n2,B,Stop B,0,0\n")
	writeFixture(t, dir, "patterns.csv", "pattern_id,line_id,line_code,line_type,line_color,fare_cents,stop_ids\n10,1,L1,bus,#fff,500,1|2\n")
	writeFixture(t, dir, "trips.csv", "pattern_id,service_id,in_service,stop_times\n99,weekday,true,0:0|60:60\n")
	writeFixture(t, dir, "transfers.csv", "from_stop,to_stop,duration_seconds,cost\n")

	_, err := Load(dir)
	assert.Error(t, err)
}
