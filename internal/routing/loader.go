package routing

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Loader is the Postgres/PostGIS Timetable Data Loader (C8): it turns
// the operational schema (stops, lines, line_stops, schedules) into
// the in-memory Provider a Worker searches against. It runs once at
// startup, never during a search.
type Loader struct {
	db *pgxpool.Pool
}

func NewLoader(db *pgxpool.Pool) *Loader {
	return &Loader{db: db}
}

// LoadData builds a MemoryProvider from the current database
// contents. It groups line_stops by (line_id, direction) into
// patterns, synthesizes trips from the schedules table (one row per
// first-stop departure, per day type), and derives walk transfers
// from a PostGIS proximity join.
func (l *Loader) LoadData(ctx context.Context) (*MemoryProvider, error) {
	log.Println("Loading timetable data from database...")
	start := time.Now()

	stops, stopMap, err := l.loadStops(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading stops")
	}
	log.Printf("Loaded %d stops", len(stops))

	patterns, err := l.loadPatterns(ctx, stopMap)
	if err != nil {
		return nil, errors.Wrap(err, "loading patterns")
	}
	log.Printf("Loaded %d patterns", len(patterns))

	transfers, err := l.loadTransfers(ctx, stopMap)
	if err != nil {
		return nil, errors.Wrap(err, "generating transfers")
	}

	for i := range patterns {
		if err := validatePattern(&patterns[i]); err != nil {
			return nil, errors.Wrapf(err, "pattern %d (line %s)", i, patterns[i].LineCode)
		}
	}

	log.Printf("Timetable load complete in %s", time.Since(start))
	return NewMemoryProvider(stops, patterns, transfers), nil
}

func (l *Loader) loadStops(ctx context.Context) ([]Stop, map[int]StopID, error) {
	rows, err := l.db.Query(ctx, "SELECT id, code, name_fr, ST_X(location::geometry), ST_Y(location::geometry) FROM stops")
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var stops []Stop
	stopMap := make(map[int]StopID)
	for rows.Next() {
		var s Stop
		var dbID int
		if err := rows.Scan(&dbID, &s.Code, &s.Name, &s.Lon, &s.Lat); err != nil {
			return nil, nil, err
		}
		s.DBID = dbID
		s.ID = StopID(len(stops))
		stopMap[dbID] = s.ID
		stops = append(stops, s)
	}
	return stops, stopMap, rows.Err()
}

// loadPatterns groups line_stops by (line_id, direction) into unique
// physical stop sequences, and synthesizes one Trip per scheduled
// first-stop departure, per day type.
func (l *Loader) loadPatterns(ctx context.Context, stopMap map[int]StopID) ([]Pattern, error) {
	patternRows, err := l.db.Query(ctx, "SELECT DISTINCT line_id, direction FROM line_stops")
	if err != nil {
		return nil, err
	}
	lineDirs := [][2]int{}
	for patternRows.Next() {
		var lid, dir int
		if err := patternRows.Scan(&lid, &dir); err != nil {
			patternRows.Close()
			return nil, err
		}
		lineDirs = append(lineDirs, [2]int{lid, dir})
	}
	patternRows.Close()

	var patterns []Pattern
	for _, ld := range lineDirs {
		lineID, dirID := ld[0], ld[1]

		var lineCode, lineType, lineColor string
		err := l.db.QueryRow(ctx, "SELECT code, line_type, COALESCE(color, '#000000') FROM lines WHERE id=$1", lineID).Scan(&lineCode, &lineType, &lineColor)
		if err != nil {
			log.Println("skipping line", lineID, err)
			continue
		}

		stopIDs, dbStopIDs, err := l.loadPatternStops(ctx, lineID, dirID, stopMap)
		if err != nil {
			return nil, err
		}
		if len(stopIDs) < 2 {
			continue
		}

		pattern := Pattern{
			ID:        PatternID(len(patterns)),
			Stops:     stopIDs,
			LineID:    lineID,
			LineCode:  lineCode,
			LineType:  lineType,
			LineColor: lineColor,
			FareCents: fareCentsForLineType(lineType),
		}

		trips, err := l.loadTrips(ctx, lineID, dirID, dbStopIDs)
		if err != nil {
			return nil, err
		}
		pattern.Trips = trips

		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func (l *Loader) loadPatternStops(ctx context.Context, lineID, dirID int, stopMap map[int]StopID) ([]StopID, []int, error) {
	rows, err := l.db.Query(ctx, "SELECT stop_id FROM line_stops WHERE line_id=$1 AND direction=$2 ORDER BY stop_sequence", lineID, dirID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var stopIDs []StopID
	var dbStopIDs []int
	for rows.Next() {
		var sid int
		if err := rows.Scan(&sid); err != nil {
			return nil, nil, err
		}
		if rid, ok := stopMap[sid]; ok {
			stopIDs = append(stopIDs, rid)
			dbStopIDs = append(dbStopIDs, sid)
		}
	}
	return stopIDs, dbStopIDs, rows.Err()
}

// tripTravelSeconds is the synthetic per-stop dwell+travel time used
// to extrapolate a trip's full stop-time table from a single
// first-stop departure. The schedules table only records a departure
// per (line, direction, stop, day_type), not a per-trip stop_times
// array, so every stop after the first is derived rather than
// measured. Trams run a tighter schedule than buses.
func tripTravelSeconds(lineType string) int {
	switch lineType {
	case "tram", "busway", "train":
		return 120
	default:
		return 180
	}
}

func fareCentsForLineType(lineType string) int {
	switch lineType {
	case "tram", "busway", "train":
		return 800
	default:
		return 500
	}
}

// loadTrips synthesizes one Trip per scheduled first-stop departure
// for every day type the engine serves. Day types are appended one
// after another, each sorted by departure time, so the trips of any
// single day type (the only ones in service for one search) appear in
// departure order, which is the ordering TripSearch relies on.
func (l *Loader) loadTrips(ctx context.Context, lineID, dirID int, dbStopIDs []int) ([]Trip, error) {
	if len(dbStopIDs) == 0 {
		return nil, nil
	}
	firstStopDBID := dbStopIDs[0]
	stopCount := len(dbStopIDs)

	var lineType string
	_ = l.db.QueryRow(ctx, "SELECT line_type FROM lines WHERE id=$1", lineID).Scan(&lineType)
	step := tripTravelSeconds(lineType)

	var trips []Trip
	for _, dayType := range []string{"weekday", "saturday", "sunday"} {
		rows, err := l.db.Query(ctx, `
			SELECT departure_time FROM schedules
			WHERE line_id=$1 AND direction=$2 AND stop_id=$3 AND day_type=$4
			ORDER BY departure_time
		`, lineID, dirID, firstStopDBID, dayType)
		if err != nil {
			continue
		}

		var startTimes []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				rows.Close()
				return nil, err
			}
			startTimes = append(startTimes, t)
		}
		rows.Close()

		for _, st := range startTimes {
			startTime, err := time.Parse("15:04:05", st)
			if err != nil {
				continue
			}
			startSecs := TimeToSeconds(startTime)

			stopTimes := make([]StopTime, stopCount)
			current := startSecs
			for i := 0; i < stopCount; i++ {
				stopTimes[i] = StopTime{Arrival: current, Departure: current}
				current += step
			}

			trips = append(trips, Trip{
				ID:        TripID(len(trips)),
				ServiceID: dayType,
				InService: true,
				StopTimes: stopTimes,
			})
		}
	}
	return trips, nil
}

// loadTransfers derives walk transfers between stops within 300m of
// each other, using a PostGIS geography proximity join rather than a
// hand-rolled haversine computation. Walk time assumes a 1m/s pace.
func (l *Loader) loadTransfers(ctx context.Context, stopMap map[int]StopID) (map[StopID][]TransferLeg, error) {
	log.Println("generating transfers")
	rows, err := l.db.Query(ctx, `
		SELECT s1.id, s2.id, ST_Distance(s1.location::geography, s2.location::geography)
		FROM stops s1
		JOIN stops s2 ON ST_DWithin(s1.location::geography, s2.location::geography, 300)
		WHERE s1.id != s2.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make(map[StopID][]TransferLeg)
	count := 0
	for rows.Next() {
		var id1, id2 int
		var dist float64
		if err := rows.Scan(&id1, &id2, &dist); err != nil {
			return nil, err
		}
		rid1, ok1 := stopMap[id1]
		rid2, ok2 := stopMap[id2]
		if !ok1 || !ok2 {
			continue
		}
		transfers[rid1] = append(transfers[rid1], TransferLeg{
			FromStop: rid1,
			ToStop:   rid2,
			Duration: int(dist),
		})
		count++
	}
	log.Printf("generated %d transfers", count)
	return transfers, rows.Err()
}
