// Package models defines core data structures for floors, labels, and room resolution.
package models

import (
	"fmt"
	"strings"
)

// FloorID identifies one of the building's three documented storeys.
type FloorID string

const (
	FloorGround FloorID = "ground"
	Floor1      FloorID = "floor_1"
	Floor2      FloorID = "floor_2"
)

// FloorOrder is the fixed floor priority used everywhere a deterministic
// order is needed: load order, resolution tie-breaks, export sheet order.
var FloorOrder = []FloorID{FloorGround, Floor1, Floor2}

// ParseFloorID parses s into a FloorID. Accepts the canonical identifiers only.
func ParseFloorID(s string) (FloorID, error) {
	switch FloorID(strings.ToLower(strings.TrimSpace(s))) {
	case FloorGround:
		return FloorGround, nil
	case Floor1:
		return Floor1, nil
	case Floor2:
		return Floor2, nil
	}
	return "", fmt.Errorf("unknown floor identifier: %q", s)
}

// NormalizeRoomName returns the canonical form of a room name or query:
// uppercased and trimmed. Both the floor index builder and the resolver use
// this, so stored names and queries always compare in the same form.
func NormalizeRoomName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
