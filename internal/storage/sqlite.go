package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kortnav/rumfinder/internal/index"
	"github.com/kortnav/rumfinder/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		building TEXT NOT NULL,
		fingerprint TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS floors (
		build_id TEXT NOT NULL,
		floor TEXT NOT NULL,
		path TEXT NOT NULL,
		page_width REAL NOT NULL,
		page_height REAL NOT NULL,
		PRIMARY KEY (build_id, floor),
		FOREIGN KEY (build_id) REFERENCES builds(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS rooms (
		build_id TEXT NOT NULL,
		floor TEXT NOT NULL,
		name TEXT NOT NULL,
		seq INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		PRIMARY KEY (build_id, floor, name),
		FOREIGN KEY (build_id) REFERENCES builds(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_rooms_build_floor ON rooms(build_id, floor, seq);

	CREATE TABLE IF NOT EXISTS entrances (
		build_id TEXT NOT NULL,
		floor TEXT NOT NULL,
		seq INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		PRIMARY KEY (build_id, floor, seq),
		FOREIGN KEY (build_id) REFERENCES builds(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveBuilding replaces the cached index with b under the given fingerprint.
// Only one build is kept; the single-building design has no use for history.
func (s *SQLiteStore) SaveBuilding(ctx context.Context, fp string, b *index.Building) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// SQLite ignores foreign_keys pragma changes mid-transaction, so clear
	// child tables explicitly rather than relying on cascades.
	for _, table := range []string{"entrances", "rooms", "floors", "builds"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	buildID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO builds (id, building, fingerprint) VALUES (?, ?, ?)`,
		buildID, b.Name, fp,
	); err != nil {
		return fmt.Errorf("insert build: %w", err)
	}

	for _, floor := range b.Floors() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO floors (build_id, floor, path, page_width, page_height) VALUES (?, ?, ?, ?, ?)`,
			buildID, string(floor.Floor), floor.Path, floor.PageWidth, floor.PageHeight,
		); err != nil {
			return fmt.Errorf("insert floor %s: %w", floor.Floor, err)
		}
		for i, name := range floor.RoomNames() {
			pos, _ := floor.Room(name)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rooms (build_id, floor, name, seq, x, y) VALUES (?, ?, ?, ?, ?, ?)`,
				buildID, string(floor.Floor), name, i, pos.X, pos.Y,
			); err != nil {
				return fmt.Errorf("insert room %s: %w", name, err)
			}
		}
		for i, e := range floor.Entrances {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO entrances (build_id, floor, seq, x, y) VALUES (?, ?, ?, ?, ?)`,
				buildID, string(floor.Floor), i, e.X, e.Y,
			); err != nil {
				return fmt.Errorf("insert entrance %d: %w", i, err)
			}
		}
	}
	return tx.Commit()
}

// LoadBuilding reconstructs the cached build matching fingerprint. The
// reconstructed building passes through the same invariant checks as a fresh
// load, so a corrupted cache cannot smuggle in a partial index.
func (s *SQLiteStore) LoadBuilding(ctx context.Context, fp string) (*index.Building, error) {
	var buildID, name string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, building FROM builds WHERE fingerprint = ?`, fp,
	).Scan(&buildID, &name)
	if err == sql.ErrNoRows {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	floors := make([]*models.FloorIndex, 0, len(models.FloorOrder))
	for _, floorID := range models.FloorOrder {
		floor, err := s.loadFloor(ctx, buildID, floorID)
		if err != nil {
			return nil, fmt.Errorf("load floor %s: %w", floorID, err)
		}
		floors = append(floors, floor)
	}
	return index.New(name, floors)
}

func (s *SQLiteStore) loadFloor(ctx context.Context, buildID string, floorID models.FloorID) (*models.FloorIndex, error) {
	floor := models.NewFloorIndex(floorID)
	err := s.db.QueryRowContext(ctx,
		`SELECT path, page_width, page_height FROM floors WHERE build_id = ? AND floor = ?`,
		buildID, string(floorID),
	).Scan(&floor.Path, &floor.PageWidth, &floor.PageHeight)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("floor not in cache")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, x, y FROM rooms WHERE build_id = ? AND floor = ? ORDER BY seq`,
		buildID, string(floorID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var p models.Point
		if err := rows.Scan(&name, &p.X, &p.Y); err != nil {
			return nil, err
		}
		floor.AddRoom(name, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entRows, err := s.db.QueryContext(ctx,
		`SELECT x, y FROM entrances WHERE build_id = ? AND floor = ? ORDER BY seq`,
		buildID, string(floorID),
	)
	if err != nil {
		return nil, err
	}
	defer entRows.Close()
	for entRows.Next() {
		var p models.Point
		if err := entRows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		floor.Entrances = append(floor.Entrances, p)
	}
	return floor, entRows.Err()
}

// Stats returns cache content counts.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&st.Builds); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&st.Rooms); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entrances`).Scan(&st.Entrances); err != nil {
		return st, err
	}
	return st, nil
}

// SizeBytes returns the database file's size on disk, 0 when absent.
func (s *SQLiteStore) SizeBytes() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return info.Size(), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
