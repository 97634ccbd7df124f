package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/antigravity/morocco-transport/internal/repository"
	"github.com/antigravity/morocco-transport/internal/routing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

type TransportHandler struct {
	Repo   *repository.LineRepository
	Engine *routing.Engine
}

func NewTransportHandler(repo *repository.LineRepository, engine *routing.Engine) *TransportHandler {
	return &TransportHandler{Repo: repo, Engine: engine}
}

func (h *TransportHandler) GetAllLines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Repo.GetAllLines(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(lines)
}

func (h *TransportHandler) GetLineDetails(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid line ID", http.StatusBadRequest)
		return
	}

	line, stops, err := h.Repo.GetLineDetails(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"line":  line,
		"stops": stops,
	}
	json.NewEncoder(w).Encode(response)
}

// routeQuery is the parsed, validated /route and /route/options input.
type routeQuery struct {
	sourceMap     map[routing.StopID]int
	targetMap     map[routing.StopID]bool
	departureTime int
	dayOptions    []string
}

// resolveRouteQuery parses origin/destination coordinates, resolves
// them to nearby stops via the repository's viewport lookup, and
// converts those to routing-local stop IDs. It writes an HTTP error
// response and returns ok=false if the request can't be resolved.
func (h *TransportHandler) resolveRouteQuery(w http.ResponseWriter, r *http.Request) (routeQuery, bool) {
	fromLat, _ := strconv.ParseFloat(r.URL.Query().Get("from_lat"), 64)
	fromLon, _ := strconv.ParseFloat(r.URL.Query().Get("from_lon"), 64)
	toLat, _ := strconv.ParseFloat(r.URL.Query().Get("to_lat"), 64)
	toLon, _ := strconv.ParseFloat(r.URL.Query().Get("to_lon"), 64)

	// Parse time (in seconds from midnight) and day type
	departureTime := 8*3600 + 30*60 // Default: 08:30
	if timeParam := r.URL.Query().Get("time"); timeParam != "" {
		if parsed, err := strconv.Atoi(timeParam); err == nil && parsed >= 0 && parsed < 86400 {
			departureTime = parsed
		}
	}

	dayType := "weekday" // Default
	if dayParam := r.URL.Query().Get("day"); dayParam != "" {
		dayParam = strings.ToLower(dayParam)
		// Normalize weekend variants to a special bucket we will fan out later
		if dayParam == "weekend" {
			dayType = "weekend"
		} else if dayParam == "saturday" || dayParam == "sunday" {
			dayType = dayParam
		}
	}

	if fromLat == 0 || toLat == 0 {
		http.Error(w, "Missing source/destination coordinates", http.StatusBadRequest)
		return routeQuery{}, false
	}

	// Find nearby source/destination stops via the repository's
	// PostGIS-backed viewport lookup.
	sources, err := h.Repo.GetStopsInViewport(r.Context(), fromLat-0.01, fromLon-0.01, fromLat+0.01, fromLon+0.01)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return routeQuery{}, false
	}

	targets, err := h.Repo.GetStopsInViewport(r.Context(), toLat-0.01, toLon-0.01, toLat+0.01, toLon+0.01)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return routeQuery{}, false
	}

	log.Printf("GetRoute: found %d source stops, %d target stops, time=%d, day=%s", len(sources), len(targets), departureTime, dayType)

	sourceMap := h.Engine.ConvertStopsToIDs(sources, 0) // 0 walk time for now
	targetMapB := h.Engine.ConvertStopsToIDs(targets, 0)
	targetMap := make(map[routing.StopID]bool)
	for k := range targetMapB {
		targetMap[k] = true
	}

	if len(sourceMap) == 0 || len(targetMap) == 0 {
		http.Error(w, "No nearby stops found", http.StatusNotFound)
		return routeQuery{}, false
	}

	dayOptions := []string{dayType}
	if dayType == "weekend" {
		dayOptions = []string{"saturday", "sunday"}
	}

	return routeQuery{sourceMap: sourceMap, targetMap: targetMap, departureTime: departureTime, dayOptions: dayOptions}, true
}

func (h *TransportHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	q, ok := h.resolveRouteQuery(w, r)
	if !ok {
		return
	}

	var journey *routing.Journey
	for _, d := range q.dayOptions {
		j, err := h.Engine.FindRoute(q.sourceMap, q.targetMap, q.departureTime, d)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if j != nil {
			journey = j
			break
		}
	}

	if journey == nil {
		http.Error(w, "No route found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(journey)
}

// GetRouteOptions returns the fare-aware Pareto frontier of journeys
// (arrival time, transfers, cost) for one day type, instead of only
// the earliest-arrival journey.
func (h *TransportHandler) GetRouteOptions(w http.ResponseWriter, r *http.Request) {
	q, ok := h.resolveRouteQuery(w, r)
	if !ok {
		return
	}

	var journeys []*routing.Journey
	for _, d := range q.dayOptions {
		paths, err := h.Engine.SearchPareto(q.sourceMap, q.targetMap, q.departureTime, q.departureTime, d)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, p := range paths {
			journeys = append(journeys, h.Engine.ToJourney(p))
		}
		if len(journeys) > 0 {
			break
		}
	}

	if len(journeys) == 0 {
		http.Error(w, "No route found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(journeys)
}

func (h *TransportHandler) GetStops(w http.ResponseWriter, r *http.Request) {
	// Parse viewport params
	minLat, _ := strconv.ParseFloat(r.URL.Query().Get("min_lat"), 64)
	minLon, _ := strconv.ParseFloat(r.URL.Query().Get("min_lon"), 64)
	maxLat, _ := strconv.ParseFloat(r.URL.Query().Get("max_lat"), 64)
	maxLon, _ := strconv.ParseFloat(r.URL.Query().Get("max_lon"), 64)

	if minLat == 0 || maxLat == 0 {
		http.Error(w, "Missing viewport coordinates", http.StatusBadRequest)
		return
	}

	stops, err := h.Repo.GetStopsInViewport(r.Context(), minLat, minLon, maxLat, maxLon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(stops)
}

func (h *TransportHandler) GetStopDetails(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid stop ID", http.StatusBadRequest)
		return
	}

	stop, lines, err := h.Repo.GetStopDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Stop not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"stop":  stop,
		"lines": lines,
	}
	json.NewEncoder(w).Encode(response)
}
