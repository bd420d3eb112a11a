package resolve

import (
	"github.com/kortnav/rumfinder/internal/index"
	"github.com/kortnav/rumfinder/internal/models"
)

// NearestEntrance returns the entrance closest to room by squared Euclidean
// distance. Both points must be expressed in the same normalized coordinate
// frame; the selector does not correct for floors with differing page aspect
// ratios. Exact ties resolve to the first candidate in iteration order. An
// empty entrance set fails with NoEntrancesError.
func NearestEntrance(room models.Point, entrances []models.Point) (models.Point, error) {
	if len(entrances) == 0 {
		return models.Point{}, &index.NoEntrancesError{}
	}
	nearest := entrances[0]
	best := distanceSquared(room, nearest)
	for _, candidate := range entrances[1:] {
		if d := distanceSquared(room, candidate); d < best {
			best = d
			nearest = candidate
		}
	}
	return nearest, nil
}

func distanceSquared(a, b models.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
