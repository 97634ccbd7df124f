package routing

// Provider is the read-only Timetable Data Provider (C1). All data it
// exposes is immutable for the duration of one search; iterators it
// returns are single-pass and valid only until the provider's next
// call.
type Provider interface {
	// Init is called once per search and lets the provider
	// precompute anything derived from the search day (service
	// masks, stop-to-pattern indexes).
	Init(serviceID string) error

	// NumStops returns the number of stops in [0, NumStops()).
	NumStops() int

	// IsTripInService reports whether trip p/t runs on the service
	// day this provider was Init'd with.
	IsTripInService(pattern PatternID, trip TripID) bool

	// PatternsTouching returns every pattern that visits at least
	// one stop in touched, without duplicates. Order is unspecified
	// but stable within one call.
	PatternsTouching(touched []StopID) []PatternID

	// Pattern returns the pattern by ID. Implementations may return
	// a pointer into provider-owned storage; callers must not
	// retain it past the current search.
	Pattern(id PatternID) *Pattern

	// Transfers returns the outgoing transfer legs from a stop.
	Transfers(from StopID) []TransferLeg
}

// MemoryProvider is an in-memory Provider built once (by the Postgres
// loader, the CSV loader, or a test) and then queried read-only by
// any number of Worker instances.
type MemoryProvider struct {
	Stops        []Stop
	Patterns     []Pattern
	TransferLegs map[StopID][]TransferLeg

	stopPatterns map[StopID][]PatternID
	dbIDIndex    map[int]StopID
	serviceID    string
}

func NewMemoryProvider(stops []Stop, patterns []Pattern, transfers map[StopID][]TransferLeg) *MemoryProvider {
	m := &MemoryProvider{
		Stops:        stops,
		Patterns:     patterns,
		TransferLegs: transfers,
	}
	m.dbIDIndex = make(map[int]StopID, len(stops))
	for _, s := range stops {
		m.dbIDIndex[s.DBID] = s.ID
	}
	return m
}

// StopIDForDBID resolves the routing-local StopID for a stop's
// originating database id (set by the Postgres loader), used by the
// HTTP handler to translate repository lookups into engine input.
func (m *MemoryProvider) StopIDForDBID(dbID int) (StopID, bool) {
	id, ok := m.dbIDIndex[dbID]
	return id, ok
}

func (m *MemoryProvider) Init(serviceID string) error {
	m.serviceID = serviceID
	m.stopPatterns = make(map[StopID][]PatternID, len(m.Stops))
	for i := range m.Patterns {
		p := &m.Patterns[i]
		seen := make(map[StopID]bool, len(p.Stops))
		for _, s := range p.Stops {
			if seen[s] {
				continue
			}
			seen[s] = true
			m.stopPatterns[s] = append(m.stopPatterns[s], p.ID)
		}
	}
	return nil
}

func (m *MemoryProvider) NumStops() int { return len(m.Stops) }

func (m *MemoryProvider) IsTripInService(pattern PatternID, trip TripID) bool {
	p := m.Pattern(pattern)
	if p == nil || int(trip) < 0 || int(trip) >= len(p.Trips) {
		return false
	}
	t := &p.Trips[trip]
	if !t.InService {
		return false
	}
	return m.serviceID == "" || t.ServiceID == m.serviceID
}

func (m *MemoryProvider) PatternsTouching(touched []StopID) []PatternID {
	seen := make(map[PatternID]bool)
	var out []PatternID
	for _, s := range touched {
		for _, pid := range m.stopPatterns[s] {
			if seen[pid] {
				continue
			}
			seen[pid] = true
			out = append(out, pid)
		}
	}
	return out
}

func (m *MemoryProvider) Pattern(id PatternID) *Pattern {
	if int(id) < 0 || int(id) >= len(m.Patterns) {
		return nil
	}
	return &m.Patterns[id]
}

func (m *MemoryProvider) Transfers(from StopID) []TransferLeg {
	return m.TransferLegs[from]
}
