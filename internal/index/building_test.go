package index

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/extract"
	"github.com/kortnav/rumfinder/internal/models"
)

// fakeSource serves canned extraction results keyed by document path.
type fakeSource struct {
	results map[string]*extract.Result
}

func (f *fakeSource) Extract(path string, page int) (*extract.Result, error) {
	r, ok := f.results[path]
	if !ok {
		return nil, &extract.ReadError{Path: path, Err: fmt.Errorf("no such document")}
	}
	return r, nil
}

func testConfig() *config.Config {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Building.Name = "testhus"
	cfg.Building.Floors = config.FloorPaths{
		Ground: "/plans/ground.pdf",
		Floor1: "/plans/floor_1.pdf",
		Floor2: "/plans/floor_2.pdf",
	}
	return &cfg
}

func floorResult(entrance bool, rooms ...string) *extract.Result {
	res := &extract.Result{PageWidth: 600, PageHeight: 1200}
	x := 60.0
	for _, name := range rooms {
		res.Labels = append(res.Labels, label(name, x, 300))
		x += 60
	}
	if entrance {
		res.Labels = append(res.Labels, label("Indgang", 60, 1080))
	}
	return res
}

func testSource() *fakeSource {
	return &fakeSource{results: map[string]*extract.Result{
		"/plans/ground.pdf":  floorResult(true, "A.0.01", "A.0.02"),
		"/plans/floor_1.pdf": floorResult(false, "A.1.10", "A.1.11"),
		"/plans/floor_2.pdf": floorResult(false, "A.2.20"),
	}}
}

func TestLoad(t *testing.T) {
	b, err := Load(testConfig(), testSource(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != "testhus" {
		t.Errorf("name = %q", b.Name)
	}
	if b.RoomCount() != 5 {
		t.Errorf("rooms = %d, want 5", b.RoomCount())
	}
	if b.EntranceCount() != 1 {
		t.Errorf("entrances = %d, want 1", b.EntranceCount())
	}
	if b.Ground() == nil || b.Ground().Floor != models.FloorGround {
		t.Error("Ground() must return the ground floor index")
	}
	floors := b.Floors()
	if len(floors) != 3 || floors[0].Floor != models.FloorGround || floors[2].Floor != models.Floor2 {
		t.Errorf("Floors() order wrong: %v", []models.FloorID{floors[0].Floor, floors[1].Floor, floors[2].Floor})
	}
	if _, ok := b.Floor(models.Floor1); !ok {
		t.Error("Floor(floor_1) should exist")
	}
}

func TestLoad_missingDocument(t *testing.T) {
	src := testSource()
	delete(src.results, "/plans/floor_2.pdf")
	_, err := Load(testConfig(), src, nil)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Floor != models.Floor2 {
		t.Errorf("LoadError names floor %s, want %s", loadErr.Floor, models.Floor2)
	}
	var readErr *extract.ReadError
	if !errors.As(err, &readErr) {
		t.Error("LoadError should wrap the extractor's ReadError")
	}
}

func TestLoad_groundWithoutEntrances(t *testing.T) {
	src := testSource()
	src.results["/plans/ground.pdf"] = floorResult(false, "A.0.01")
	_, err := Load(testConfig(), src, nil)
	var noEnt *NoEntrancesError
	if !errors.As(err, &noEnt) {
		t.Fatalf("expected NoEntrancesError, got %v", err)
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Floor != models.FloorGround {
		t.Error("NoEntrancesError should surface wrapped in a ground-floor LoadError")
	}
}

func TestLoad_emptyFloorFailsWholeLoad(t *testing.T) {
	src := testSource()
	src.results["/plans/floor_1.pdf"] = &extract.Result{PageWidth: 600, PageHeight: 1200}
	_, err := Load(testConfig(), src, nil)
	var emptyErr *EmptyFloorError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyFloorError, got %v", err)
	}
}

func TestNew_missingFloor(t *testing.T) {
	g := models.NewFloorIndex(models.FloorGround)
	g.AddRoom("A.0.01", models.Point{X: 0.1, Y: 0.1})
	g.Entrances = append(g.Entrances, models.Point{X: 0.1, Y: 0.9})
	_, err := New("x", []*models.FloorIndex{g})
	if err == nil {
		t.Fatal("expected error for missing floors")
	}
}
