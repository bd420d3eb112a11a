package index

import (
	"strings"

	"github.com/kortnav/rumfinder/internal/models"
)

// BuildFloor consumes one floor's labels and produces its index. Each label's
// origin is normalized against the page dimensions; entrance markers are
// classified before room names, and are collected only on the ground floor
// (entrance-like labels elsewhere are ignored, not an error). Duplicate room
// names keep the first occurrence. Fails with PointRangeError for a label
// that normalizes outside [0,1] and with EmptyFloorError when no rooms remain.
func BuildFloor(floor models.FloorID, labels []models.Label, pageWidth, pageHeight float64, c *Classifier) (*models.FloorIndex, error) {
	idx := models.NewFloorIndex(floor)
	idx.PageWidth = pageWidth
	idx.PageHeight = pageHeight

	for _, l := range labels {
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}
		isEntrance := c.IsEntrance(text)
		if !isEntrance && !c.IsRoom(l) {
			continue
		}

		p := models.Point{X: l.X / pageWidth, Y: l.Y / pageHeight}
		if pageWidth <= 0 || pageHeight <= 0 || !p.InUnitRange() {
			return nil, &PointRangeError{Floor: floor, Text: text, Point: p}
		}

		if isEntrance {
			if floor == models.FloorGround {
				idx.Entrances = append(idx.Entrances, p)
			}
			continue
		}
		idx.AddRoom(text, p)
	}

	if idx.RoomCount() == 0 {
		return nil, &EmptyFloorError{Floor: floor}
	}
	return idx, nil
}
