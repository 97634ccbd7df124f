package routing

import "github.com/antigravity/morocco-transport/internal/models"

// ConvertStopsToIDs maps repository stops (keyed by database id) to
// the engine's routing-local StopID space, seeding each with the
// same initial access-walk duration.
func (e *Engine) ConvertStopsToIDs(stops []models.Stop, initialWalk int) map[StopID]int {
	result := make(map[StopID]int)
	for _, s := range stops {
		if id, ok := e.Provider.StopIDForDBID(s.ID); ok {
			result[id] = initialWalk
		}
	}
	return result
}
