// Package index builds per-floor room indices and assembles them into a
// building-wide lookup with load-time invariants.
package index

import (
	"fmt"

	"github.com/kortnav/rumfinder/internal/models"
)

// EmptyFloorError reports a floor whose document yielded zero room entries.
// This points at an extraction failure upstream and is never swallowed.
type EmptyFloorError struct {
	Floor models.FloorID
}

func (e *EmptyFloorError) Error() string {
	return fmt.Sprintf("floor %s yielded no room labels", e.Floor)
}

// NoEntrancesError reports an empty entrance set, either on the ground floor
// at load time or at nearest-entrance selection time.
type NoEntrancesError struct{}

func (e *NoEntrancesError) Error() string {
	return "no entrance markers on the ground floor"
}

// PointRangeError reports a normalized coordinate outside [0,1]. Such labels
// indicate a corrupt extraction and fail the build rather than being clamped.
type PointRangeError struct {
	Floor models.FloorID
	Text  string
	Point models.Point
}

func (e *PointRangeError) Error() string {
	return fmt.Sprintf("floor %s: label %q normalizes outside the unit range: (%v, %v)",
		e.Floor, e.Text, e.Point.X, e.Point.Y)
}

// LoadError wraps the first per-floor failure encountered during a building
// load, naming the floor and document so startup failures are actionable.
type LoadError struct {
	Floor models.FloorID
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load floor %s (%s): %v", e.Floor, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
