// Package resolve answers room queries against a loaded building index and
// selects the nearest ground-floor entrance.
package resolve

import (
	"github.com/kortnav/rumfinder/internal/index"
	"github.com/kortnav/rumfinder/internal/models"
)

// Resolve looks up a raw query across all floors. The query is normalized
// the same way room names were at build time (uppercase, trimmed) and matched
// exactly; no substring or fuzzy matching. Floors are scanned in the fixed
// priority order ground, floor_1, floor_2, so a name that (through a data
// error) exists on several floors always resolves to the same one.
// A query with no match returns the not-found marker, never an error.
func Resolve(query string, b *index.Building) models.ResolvedRoom {
	name := models.NormalizeRoomName(query)
	if name == "" {
		return models.NotFound
	}
	for _, floorID := range models.FloorOrder {
		floor, ok := b.Floor(floorID)
		if !ok {
			continue
		}
		if pos, ok := floor.Room(name); ok {
			return models.ResolvedRoom{Found: true, Floor: floorID, Name: name, Position: pos}
		}
	}
	return models.NotFound
}
