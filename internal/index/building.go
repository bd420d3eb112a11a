package index

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/extract"
	"github.com/kortnav/rumfinder/internal/models"
)

// Building aggregates the three floor indices. It is built once per load and
// read-only afterwards, which makes concurrent query reads safe without locks.
type Building struct {
	Name   string
	floors map[models.FloorID]*models.FloorIndex
}

// New assembles a Building from floor indices, enforcing the load-time
// invariants: exactly one index per floor identifier, and a non-empty
// entrance set on the ground floor (NoEntrancesError otherwise).
func New(name string, floors []*models.FloorIndex) (*Building, error) {
	byID := make(map[models.FloorID]*models.FloorIndex, len(floors))
	for _, f := range floors {
		if f == nil {
			continue
		}
		if _, dup := byID[f.Floor]; dup {
			return nil, fmt.Errorf("duplicate floor index for %s", f.Floor)
		}
		byID[f.Floor] = f
	}
	for _, id := range models.FloorOrder {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("missing floor index for %s", id)
		}
	}
	if len(byID[models.FloorGround].Entrances) == 0 {
		return nil, &NoEntrancesError{}
	}
	return &Building{Name: name, floors: byID}, nil
}

// Floor returns the index for the given floor identifier.
func (b *Building) Floor(id models.FloorID) (*models.FloorIndex, bool) {
	f, ok := b.floors[id]
	return f, ok
}

// Ground returns the ground floor's index. Always succeeds on a loaded
// Building; the entrance invariant is enforced by New.
func (b *Building) Ground() *models.FloorIndex {
	return b.floors[models.FloorGround]
}

// Floors returns the floor indices in priority order.
func (b *Building) Floors() []*models.FloorIndex {
	out := make([]*models.FloorIndex, 0, len(models.FloorOrder))
	for _, id := range models.FloorOrder {
		out = append(out, b.floors[id])
	}
	return out
}

// RoomCount returns the total number of rooms across all floors.
func (b *Building) RoomCount() int {
	var n int
	for _, f := range b.floors {
		n += f.RoomCount()
	}
	return n
}

// EntranceCount returns the number of ground-floor entrances.
func (b *Building) EntranceCount() int {
	return len(b.Ground().Entrances)
}

// Load runs the extractor and floor builder over each configured document and
// assembles the Building. Loading is all-or-nothing: the first per-floor
// failure is wrapped in LoadError and no partial index is ever returned.
func Load(cfg *config.Config, source extract.Source, logger *zap.Logger) (*Building, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	classifier, err := NewClassifier(&cfg.Markers)
	if err != nil {
		return nil, fmt.Errorf("marker rules: %w", err)
	}

	floors := make([]*models.FloorIndex, 0, len(models.FloorOrder))
	for _, floor := range models.FloorOrder {
		path := cfg.Building.Floors.Path(floor)
		result, err := source.Extract(path, cfg.Extract.Page)
		if err != nil {
			return nil, &LoadError{Floor: floor, Path: path, Err: err}
		}
		idx, err := BuildFloor(floor, result.Labels, result.PageWidth, result.PageHeight, classifier)
		if err != nil {
			return nil, &LoadError{Floor: floor, Path: path, Err: err}
		}
		idx.Path = path
		logger.Info("floor indexed",
			zap.String("floor", string(floor)),
			zap.String("path", path),
			zap.Int("rooms", idx.RoomCount()),
			zap.Int("entrances", len(idx.Entrances)),
		)
		floors = append(floors, idx)
	}

	b, err := New(cfg.Building.Name, floors)
	if err != nil {
		return nil, &LoadError{
			Floor: models.FloorGround,
			Path:  cfg.Building.Floors.Ground,
			Err:   err,
		}
	}
	return b, nil
}
