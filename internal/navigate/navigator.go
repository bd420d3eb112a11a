// Package navigate composes extraction, indexing, caching, and resolution
// into the search service the presentation layer talks to.
package navigate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/extract"
	"github.com/kortnav/rumfinder/internal/fingerprint"
	"github.com/kortnav/rumfinder/internal/index"
	"github.com/kortnav/rumfinder/internal/models"
	"github.com/kortnav/rumfinder/internal/resolve"
	"github.com/kortnav/rumfinder/internal/storage"
)

// ErrNotLoaded is returned for searches before the first successful Load.
var ErrNotLoaded = errors.New("building index not loaded")

// Navigator owns the current building index. The index is swapped as a whole
// under the lock, so concurrent searches always see a complete, consistent
// snapshot while a rebuild is in flight.
type Navigator struct {
	cfg    *config.Config
	source extract.Source
	store  storage.Store
	logger *zap.Logger

	mu       sync.RWMutex
	building *index.Building
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithStore enables the on-disk index cache.
func WithStore(s storage.Store) Option {
	return func(n *Navigator) { n.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) { n.logger = l }
}

// New creates a Navigator. Call Load before serving searches.
func New(cfg *config.Config, source extract.Source, opts ...Option) *Navigator {
	n := &Navigator{cfg: cfg, source: source, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Load builds the building index, eagerly and all-or-nothing. With a cache
// configured, an unchanged document set restores the previous build instead
// of re-extracting; any fingerprint change forces a full rebuild. On failure
// the previous index (if any) stays in place.
func (n *Navigator) Load(ctx context.Context) error {
	start := time.Now()

	var fp string
	if n.store != nil {
		var err error
		fp, err = fingerprint.Documents(n.cfg.Building.Floors.All()...)
		if err != nil {
			// Missing documents will fail the load below with a proper
			// per-floor error; just skip the cache here.
			n.logger.Warn("document fingerprint failed, cache skipped", zap.Error(err))
			fp = ""
		}
	}

	if fp != "" {
		b, err := n.store.LoadBuilding(ctx, fp)
		if err == nil {
			n.swap(b)
			n.logger.Info("index restored from cache",
				zap.String("fingerprint", fp[:12]),
				zap.Int("rooms", b.RoomCount()),
				zap.Duration("took", time.Since(start)),
			)
			return nil
		}
		if !errors.Is(err, storage.ErrCacheMiss) {
			n.logger.Warn("index cache read failed, rebuilding", zap.Error(err))
		}
	}

	b, err := index.Load(n.cfg, n.source, n.logger)
	if err != nil {
		return err
	}
	n.swap(b)
	n.logger.Info("building index loaded",
		zap.String("building", b.Name),
		zap.Int("rooms", b.RoomCount()),
		zap.Int("entrances", b.EntranceCount()),
		zap.Duration("took", time.Since(start)),
	)

	if fp != "" {
		if err := n.store.SaveBuilding(ctx, fp, b); err != nil {
			n.logger.Warn("index cache write failed", zap.Error(err))
		}
	}
	return nil
}

func (n *Navigator) swap(b *index.Building) {
	n.mu.Lock()
	n.building = b
	n.mu.Unlock()
}

// Building returns the current index snapshot, nil before the first Load.
func (n *Navigator) Building() *index.Building {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.building
}

// Search resolves a room query and selects the nearest ground-floor
// entrance. A query with no match returns a not-found result, not an error.
func (n *Navigator) Search(query string) (*models.SearchResult, error) {
	start := time.Now()
	b := n.Building()
	if b == nil {
		return nil, ErrNotLoaded
	}

	result := &models.SearchResult{Query: strings.TrimSpace(query)}
	resolved := resolve.Resolve(query, b)
	if !resolved.Found {
		result.QueryTime = time.Since(start).Milliseconds()
		return result, nil
	}

	entrance, err := resolve.NearestEntrance(resolved.Position, b.Ground().Entrances)
	if err != nil {
		return nil, err
	}

	floor, _ := b.Floor(resolved.Floor)
	result.Found = true
	result.Floor = resolved.Floor
	result.Room = resolved.Name
	result.RoomPosition = &resolved.Position
	result.Entrance = &entrance
	result.DocumentPath = floor.Path
	result.PageWidth = floor.PageWidth
	result.PageHeight = floor.PageHeight
	result.RenderScale = n.cfg.Render.Scale
	result.QueryTime = time.Since(start).Milliseconds()
	return result, nil
}
