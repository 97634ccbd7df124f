// Package csvtimetable loads a Provider from flat CSV fixture files,
// for offline demos and tests that don't need a Postgres instance.
package csvtimetable

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/antigravity/morocco-transport/internal/routing"
)

// StopCSV is one row of stops.csv.
type StopCSV struct {
	ID   int     `csv:"stop_id"`
	Code string  `csv:"code"`
	Name string  `csv:"name"`
	Lat  float64 `csv:"lat"`
	Lon  float64 `csv:"lon"`
}

// PatternCSV is one row of patterns.csv. Stops is a '|'-separated,
// sequence-ordered list of stop_id values.
type PatternCSV struct {
	PatternID int    `csv:"pattern_id"`
	LineID    int    `csv:"line_id"`
	LineCode  string `csv:"line_code"`
	LineType  string `csv:"line_type"`
	LineColor string `csv:"line_color"`
	FareCents int    `csv:"fare_cents"`
	Stops     string `csv:"stop_ids"`
}

// TripCSV is one row of trips.csv. StopTimes is a '|'-separated list
// of "arrival:departure" seconds-since-midnight pairs, one per stop
// in the owning pattern.
type TripCSV struct {
	PatternID int    `csv:"pattern_id"`
	ServiceID string `csv:"service_id"`
	InService bool   `csv:"in_service"`
	StopTimes string `csv:"stop_times"`
}

// TransferCSV is one row of transfers.csv.
type TransferCSV struct {
	FromStop int `csv:"from_stop"`
	ToStop   int `csv:"to_stop"`
	Duration int `csv:"duration_seconds"`
	Cost     int `csv:"cost"`
}

// Load reads stops.csv, patterns.csv, trips.csv, and transfers.csv
// from dir and builds a MemoryProvider. All four files must exist.
func Load(dir string) (*routing.MemoryProvider, error) {
	stopRows, err := readCSV[StopCSV](filepath.Join(dir, "stops.csv"))
	if err != nil {
		return nil, errors.Wrap(err, "reading stops.csv")
	}
	patternRows, err := readCSV[PatternCSV](filepath.Join(dir, "patterns.csv"))
	if err != nil {
		return nil, errors.Wrap(err, "reading patterns.csv")
	}
	tripRows, err := readCSV[TripCSV](filepath.Join(dir, "trips.csv"))
	if err != nil {
		return nil, errors.Wrap(err, "reading trips.csv")
	}
	transferRows, err := readCSV[TransferCSV](filepath.Join(dir, "transfers.csv"))
	if err != nil {
		return nil, errors.Wrap(err, "reading transfers.csv")
	}

	stops, dbIDToStop, err := buildStops(stopRows)
	if err != nil {
		return nil, err
	}

	patterns, patternIndex, err := buildPatterns(patternRows, dbIDToStop)
	if err != nil {
		return nil, err
	}

	if err := attachTrips(patterns, patternIndex, tripRows); err != nil {
		return nil, err
	}

	transfers, err := buildTransfers(transferRows, dbIDToStop)
	if err != nil {
		return nil, err
	}

	return routing.NewMemoryProvider(stops, patterns, transfers), nil
}

func readCSV[T any](path string) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeCSV[T](f)
}

func decodeCSV[T any](r io.Reader) ([]*T, error) {
	rows := []*T{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func buildStops(rows []*StopCSV) ([]routing.Stop, map[int]routing.StopID, error) {
	stops := make([]routing.Stop, 0, len(rows))
	dbIDToStop := make(map[int]routing.StopID, len(rows))
	for _, row := range rows {
		if _, dup := dbIDToStop[row.ID]; dup {
			return nil, nil, fmt.Errorf("repeated stop_id %d", row.ID)
		}
		id := routing.StopID(len(stops))
		dbIDToStop[row.ID] = id
		stops = append(stops, routing.Stop{
			ID:   id,
			DBID: row.ID,
			Code: row.Code,
			Name: row.Name,
			Lat:  row.Lat,
			Lon:  row.Lon,
		})
	}
	return stops, dbIDToStop, nil
}

func buildPatterns(rows []*PatternCSV, dbIDToStop map[int]routing.StopID) ([]routing.Pattern, map[int]routing.PatternID, error) {
	patterns := make([]routing.Pattern, 0, len(rows))
	index := make(map[int]routing.PatternID, len(rows))
	for _, row := range rows {
		stopIDs, err := splitStopIDs(row.Stops, dbIDToStop)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "pattern %d", row.PatternID)
		}
		if len(stopIDs) < 2 {
			return nil, nil, fmt.Errorf("pattern %d has fewer than 2 stops", row.PatternID)
		}
		id := routing.PatternID(len(patterns))
		index[row.PatternID] = id
		patterns = append(patterns, routing.Pattern{
			ID:        id,
			Stops:     stopIDs,
			LineID:    row.LineID,
			LineCode:  row.LineCode,
			LineType:  row.LineType,
			LineColor: row.LineColor,
			FareCents: row.FareCents,
		})
	}
	return patterns, index, nil
}

func splitStopIDs(raw string, dbIDToStop map[int]routing.StopID) ([]routing.StopID, error) {
	parts := strings.Split(raw, "|")
	ids := make([]routing.StopID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		dbID, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid stop_id %q: %w", p, err)
		}
		id, ok := dbIDToStop[dbID]
		if !ok {
			return nil, fmt.Errorf("unknown stop_id %d", dbID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// attachTrips appends each trips.csv row's Trip onto its pattern, in
// file order, so the Trips-sorted-by-departure invariant TripSearch
// relies on is the fixture author's responsibility (as with GTFS
// stop_times.txt ordering in the source this is adapted from).
func attachTrips(patterns []routing.Pattern, index map[int]routing.PatternID, rows []*TripCSV) error {
	for _, row := range rows {
		pid, ok := index[row.PatternID]
		if !ok {
			return fmt.Errorf("trip references unknown pattern_id %d", row.PatternID)
		}
		pattern := &patterns[pid]

		stopTimes, err := splitStopTimes(row.StopTimes)
		if err != nil {
			return errors.Wrapf(err, "pattern %d trip", row.PatternID)
		}
		if len(stopTimes) != len(pattern.Stops) {
			return fmt.Errorf("pattern %d trip has %d stop_times, pattern has %d stops", row.PatternID, len(stopTimes), len(pattern.Stops))
		}

		pattern.Trips = append(pattern.Trips, routing.Trip{
			ID:        routing.TripID(len(pattern.Trips)),
			ServiceID: row.ServiceID,
			InService: row.InService,
			StopTimes: stopTimes,
		})
	}
	return nil
}

func splitStopTimes(raw string) ([]routing.StopTime, error) {
	parts := strings.Split(raw, "|")
	out := make([]routing.StopTime, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		halves := strings.SplitN(p, ":", 2)
		if len(halves) != 2 {
			return nil, fmt.Errorf("invalid stop_time %q, want arrival:departure", p)
		}
		arr, err := strconv.Atoi(halves[0])
		if err != nil {
			return nil, fmt.Errorf("invalid arrival in %q: %w", p, err)
		}
		dep, err := strconv.Atoi(halves[1])
		if err != nil {
			return nil, fmt.Errorf("invalid departure in %q: %w", p, err)
		}
		out = append(out, routing.StopTime{Arrival: arr, Departure: dep})
	}
	return out, nil
}

func buildTransfers(rows []*TransferCSV, dbIDToStop map[int]routing.StopID) (map[routing.StopID][]routing.TransferLeg, error) {
	transfers := make(map[routing.StopID][]routing.TransferLeg)
	for _, row := range rows {
		from, ok := dbIDToStop[row.FromStop]
		if !ok {
			return nil, fmt.Errorf("transfer references unknown from_stop %d", row.FromStop)
		}
		to, ok := dbIDToStop[row.ToStop]
		if !ok {
			return nil, fmt.Errorf("transfer references unknown to_stop %d", row.ToStop)
		}
		transfers[from] = append(transfers[from], routing.TransferLeg{
			FromStop: from,
			ToStop:   to,
			Duration: row.Duration,
			Cost:     row.Cost,
		})
	}
	return transfers, nil
}
