package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/extract"
	"github.com/kortnav/rumfinder/internal/models"
	"github.com/kortnav/rumfinder/internal/navigate"
	"github.com/kortnav/rumfinder/internal/storage"
)

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

func label(text string, x, y float64) models.Label {
	return models.Label{Text: text, X: x, Y: y, FontSize: 3.4, PageWidth: 600, PageHeight: 1200}
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

func testServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	dir := t.TempDir()
	paths := map[models.FloorID]string{
		models.FloorGround: filepath.Join(dir, "ground.pdf"),
		models.Floor1:      filepath.Join(dir, "floor_1.pdf"),
		models.Floor2:      filepath.Join(dir, "floor_2.pdf"),
	}
	for floor, path := range paths {
		if err := os.WriteFile(path, []byte(string(floor)), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Building.Name = "testhus"
	cfg.Building.Floors = config.FloorPaths{
		Ground: paths[models.FloorGround],
		Floor1: paths[models.Floor1],
		Floor2: paths[models.Floor2],
	}

	src := &fakeSource{results: map[string]*extract.Result{
		paths[models.FloorGround]: floorResult(true, "A.0.01", "A.0.02"),
		paths[models.Floor1]:      floorResult(false, "A.1.10"),
		paths[models.Floor2]:      floorResult(false, "A.2.20"),
	}}

	var store storage.Store
	var opts []navigate.Option
	if withStore {
		s, err := storage.NewSQLiteStore(filepath.Join(dir, "index.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { s.Close() })
		store = s
		opts = append(opts, navigate.WithStore(s))
	}

	nav := navigate.New(&cfg, src, opts...)
	if err := nav.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return NewServer(nav, store, &cfg, zap.NewNop())
}

func TestHandleSearch(t *testing.T) {
	srv := testServer(t, false)
	body, _ := json.Marshal(map[string]string{"query": "a.1.10"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var out models.SearchResult
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Found || out.Room != "A.1.10" || out.Floor != models.Floor1 {
		t.Errorf("result: %+v", out)
	}
	if out.Entrance == nil || out.Entrance.X != 0.1 || out.Entrance.Y != 0.9 {
		t.Errorf("entrance: %+v", out.Entrance)
	}
}

func TestHandleSearch_notFound(t *testing.T) {
	srv := testServer(t, false)
	body, _ := json.Marshal(map[string]string{"query": "Z.9.99"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out models.SearchResult
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Found {
		t.Error("unknown room must report found=false, not an HTTP error")
	}
}

func TestHandleSearch_badBody(t *testing.T) {
	srv := testServer(t, false)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleFloors(t *testing.T) {
	srv := testServer(t, false)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/floors", nil)
	w := httptest.NewRecorder()
	srv.handleFloors(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Building string      `json:"building"`
		Floors   []floorInfo `json:"floors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Building != "testhus" {
		t.Errorf("building: %q", out.Building)
	}
	if len(out.Floors) != 3 {
		t.Fatalf("floors: got %d, want 3", len(out.Floors))
	}
	if out.Floors[0].Floor != models.FloorGround || out.Floors[2].Floor != models.Floor2 {
		t.Errorf("floor order: %v, %v, %v", out.Floors[0].Floor, out.Floors[1].Floor, out.Floors[2].Floor)
	}
	if out.Floors[0].Entrances != 1 {
		t.Errorf("ground entrances: %d", out.Floors[0].Entrances)
	}
	if len(out.Floors[0].Rooms) != 2 {
		t.Errorf("ground rooms: %v", out.Floors[0].Rooms)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := testServer(t, true)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.handleStatus(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var out struct {
		Building  string `json:"building"`
		Rooms     int    `json:"rooms"`
		Entrances int    `json:"entrances"`
		Cache     *struct {
			Builds    int64 `json:"builds"`
			SizeBytes int64 `json:"size_bytes"`
		} `json:"cache"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Building != "testhus" || out.Rooms != 4 || out.Entrances != 1 {
		t.Errorf("status: %+v", out)
	}
	if out.Cache == nil {
		t.Fatal("expected cache stats with a store configured")
	}
	if out.Cache.Builds != 1 || out.Cache.SizeBytes < 1 {
		t.Errorf("cache: %+v", out.Cache)
	}
}

func TestHandleReload(t *testing.T) {
	srv := testServer(t, false)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	w := httptest.NewRecorder()
	srv.handleReload(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, body: %s", w.Code, w.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, false)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}
