package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/pipeline"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
)

func (s *Server) handleCreateMindMap(w http.ResponseWriter, r *http.Request) {
	var m graph.MindMap
	if err := decode(w, r, &m); err != nil {
		writeError(w, err)
		return
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	} else if existing, err := s.maps.Get(r.Context(), m.ID); err == nil && existing.UserID != userFrom(r.Context()) {
		writeError(w, errors.New(errors.ErrCodeForbidden, "mind map %q belongs to another user", m.ID))
		return
	}
	m.UserID = userFrom(r.Context())
	m.CreatedAt, m.UpdatedAt = time.Time{}, time.Time{}

	if err := s.maps.Put(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListMindMaps(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	maps, err := s.maps.List(r.Context(), userFrom(r.Context()), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if maps == nil {
		maps = []*graph.MindMap{}
	}
	writeJSON(w, http.StatusOK, maps)
}

// ownMindMap loads a map visible to the requesting user. Maps owned by
// someone else are reported as not found.
func (s *Server) ownMindMap(r *http.Request) (*graph.MindMap, error) {
	id := chi.URLParam(r, "id")
	m, err := s.maps.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if m.UserID != "" && m.UserID != userFrom(r.Context()) {
		return nil, errors.New(errors.ErrCodeMindMapNotFound, "mind map %q not found", id)
	}
	return m, nil
}

func (s *Server) handleGetMindMap(w http.ResponseWriter, r *http.Request) {
	m, err := s.ownMindMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleMindMapLayout(w http.ResponseWriter, r *http.Request) {
	m, err := s.ownMindMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	opts := pipeline.Options{
		Engine:    q.Get("engine"),
		Algorithm: radial.Algorithm(q.Get("algorithm")),
	}
	opts.ApplyConfig(s.cfg)
	opts.TickLimit = s.cfg.Server.MaxTicks

	l, err := s.runner.Layout(r.Context(), m.Graph(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func limitParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v)
	}
	return n, nil
}
