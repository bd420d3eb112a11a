package models

// FloorIndex holds one floor's room lookup and, for the ground floor only,
// its entrance points. Built once per load; read-only afterwards.
type FloorIndex struct {
	Floor      FloorID
	Path       string
	PageWidth  float64
	PageHeight float64

	rooms map[string]Point
	names []string // insertion order, for deterministic listing/export
	// Entrances is ordered; nearest-entrance ties resolve to the first entry.
	Entrances []Point
}

// NewFloorIndex returns an empty index for the given floor.
func NewFloorIndex(floor FloorID) *FloorIndex {
	return &FloorIndex{
		Floor: floor,
		rooms: make(map[string]Point),
	}
}

// AddRoom inserts a room under its normalized name. When a document yields
// duplicate labels for the same name, the first occurrence wins; later ones
// are ignored so resolution stays deterministic. Returns whether the entry
// was inserted.
func (f *FloorIndex) AddRoom(name string, pos Point) bool {
	key := NormalizeRoomName(name)
	if key == "" {
		return false
	}
	if _, exists := f.rooms[key]; exists {
		return false
	}
	f.rooms[key] = pos
	f.names = append(f.names, key)
	return true
}

// Room looks up a room by its already-normalized name.
func (f *FloorIndex) Room(name string) (Point, bool) {
	p, ok := f.rooms[name]
	return p, ok
}

// RoomNames returns room names in insertion order.
func (f *FloorIndex) RoomNames() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// RoomCount returns the number of rooms on the floor.
func (f *FloorIndex) RoomCount() int {
	return len(f.rooms)
}

// ResolvedRoom is the outcome of a query: the owning floor and room position,
// or an explicit not-found marker. Not-found is a valid result, not an error.
type ResolvedRoom struct {
	Found    bool    `json:"found"`
	Floor    FloorID `json:"floor,omitempty"`
	Name     string  `json:"name,omitempty"`
	Position Point   `json:"position"`
}

// NotFound is the not-found marker returned for queries with no match.
var NotFound = ResolvedRoom{}
