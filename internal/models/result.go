package models

// SearchResult is what the presentation layer consumes for one query: the
// owning floor, the room's normalized position, and the nearest ground-floor
// entrance, plus the geometry needed to render markers
// (pixel = normalized * dimension * render_scale).
type SearchResult struct {
	Found bool   `json:"found"`
	Query string `json:"query"`

	Floor        FloorID `json:"floor,omitempty"`
	Room         string  `json:"room,omitempty"`
	RoomPosition *Point  `json:"room_position,omitempty"`
	Entrance     *Point  `json:"entrance_position,omitempty"`

	DocumentPath string  `json:"document_path,omitempty"`
	PageWidth    float64 `json:"page_width,omitempty"`
	PageHeight   float64 `json:"page_height,omitempty"`
	RenderScale  float64 `json:"render_scale,omitempty"`

	QueryTime int64 `json:"query_time_ms"`
}
