package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kortnav/rumfinder/internal/models"
	"github.com/kortnav/rumfinder/pkg/utils"
)

type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", utils.Truncate(req.Query, 80)))
	result, err := s.nav.Search(req.Query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type floorInfo struct {
	Floor     models.FloorID `json:"floor"`
	Document  string         `json:"document"`
	Rooms     []string       `json:"rooms"`
	Entrances int            `json:"entrances"`
}

func (s *Server) handleFloors(w http.ResponseWriter, r *http.Request) {
	b := s.nav.Building()
	if b == nil {
		s.respondError(w, http.StatusServiceUnavailable, "index not loaded")
		return
	}
	floors := make([]floorInfo, 0, len(models.FloorOrder))
	for _, idx := range b.Floors() {
		floors = append(floors, floorInfo{
			Floor:     idx.Floor,
			Document:  idx.Path,
			Rooms:     idx.RoomNames(),
			Entrances: len(idx.Entrances),
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"building": b.Name,
		"floors":   floors,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.nav.Load(r.Context()); err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	b := s.nav.Building()
	if b == nil {
		s.respondError(w, http.StatusServiceUnavailable, "index not loaded")
		return
	}
	resp := map[string]interface{}{
		"building":  b.Name,
		"floors":    len(b.Floors()),
		"rooms":     b.RoomCount(),
		"entrances": b.EntranceCount(),
	}
	if s.store != nil {
		if stats, err := s.store.Stats(r.Context()); err == nil {
			size, err := s.store.SizeBytes()
			if err != nil {
				s.logger.Warn("status: cache size failed", zap.Error(err))
			}
			resp["cache"] = map[string]interface{}{
				"builds":     stats.Builds,
				"rooms":      stats.Rooms,
				"entrances":  stats.Entrances,
				"size_bytes": size,
			}
		} else {
			s.logger.Warn("status: cache stats failed", zap.Error(err))
		}
	}
	resp["config"] = map[string]interface{}{
		"render_scale":  s.config.Render.Scale,
		"database_path": s.config.Storage.DatabasePath,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
