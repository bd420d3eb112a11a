// Package storage persists built building indices so an unchanged document
// set can be served without re-extracting the floor plans.
package storage

import (
	"context"
	"errors"

	"github.com/kortnav/rumfinder/internal/index"
)

// ErrCacheMiss is returned when no cached build matches the fingerprint.
var ErrCacheMiss = errors.New("no cached index for fingerprint")

// Stats summarizes the cache contents.
type Stats struct {
	Builds    int64
	Rooms     int64
	Entrances int64
}

// Store caches built building indices keyed by source fingerprint.
type Store interface {
	// LoadBuilding returns the cached build for fingerprint, or ErrCacheMiss.
	LoadBuilding(ctx context.Context, fp string) (*index.Building, error)
	// SaveBuilding replaces the cache with the given build.
	SaveBuilding(ctx context.Context, fp string, b *index.Building) error
	Stats(ctx context.Context) (Stats, error)
	// SizeBytes returns the cache's on-disk size.
	SizeBytes() (int64, error)
	Close() error
}
