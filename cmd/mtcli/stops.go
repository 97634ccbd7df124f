package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/antigravity/morocco-transport/internal/csvtimetable"
	"github.com/antigravity/morocco-transport/internal/routing"
)

var stopsCmd = &cobra.Command{
	Use:   "stops [lat lng] [limit]",
	Short: "Lists stops in the loaded fixture, optionally nearest a location",
	Args:  cobra.RangeArgs(0, 3),
	RunE:  stops,
}

func stops(cmd *cobra.Command, args []string) error {
	var lat, lng float64
	var limit int
	var err error

	gotLocation := false
	if len(args) == 1 {
		return fmt.Errorf("missing lng")
	}
	if len(args) >= 2 {
		gotLocation = true
		lat, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid lat: %w", err)
		}
		lng, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid lng: %w", err)
		}
	}
	if len(args) == 3 {
		limit, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid limit: %w", err)
		}
		if limit < 0 {
			return fmt.Errorf("limit must be >= 0")
		}
	}

	provider, err := csvtimetable.Load(fixtureDir)
	if err != nil {
		return fmt.Errorf("loading fixtures from %s: %w", fixtureDir, err)
	}

	list := append([]routing.Stop(nil), provider.Stops...)

	if gotLocation {
		sort.Slice(list, func(i, j int) bool {
			return haversineMeters(lat, lng, list[i].Lat, list[i].Lon) < haversineMeters(lat, lng, list[j].Lat, list[j].Lon)
		})
	} else {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}

	for _, s := range list {
		fmt.Printf("%d: %s (%s)\n", s.DBID, s.Name, s.Code)
	}
	return nil
}

// haversineMeters is only used for the CLI's nearest-stop sort; the
// HTTP API instead finds nearby stops with a PostGIS bounding-box
// query (ST_MakeEnvelope) and does not sort them by distance.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusM = 6371000.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}
