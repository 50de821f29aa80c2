package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindtower/pkg/diagram"
	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/game"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/score"
)

type createSessionRequest struct {
	MindMapID string `json:"mind_map_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.games.Create(r.Context(), userFrom(r.Context()), req.MindMapID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sessions, err := s.games.List(r.Context(), userFrom(r.Context()), r.URL.Query().Get("mind_map_id"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []*game.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.games.Get(r.Context(), chi.URLParam(r, "id"), userFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type boardResponse struct {
	SessionID string       `json:"session_id"`
	MindMapID string       `json:"mind_map_id"`
	Title     string       `json:"title"`
	Seed      uint64       `json:"seed"`
	Nodes     []graph.Node `json:"nodes"`
}

// handleBoard returns the shuffled, edgeless board of a session. Without a
// seed parameter the shuffle is derived from the session ID, so reloading
// the board shows the same arrangement.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := s.games.Board(r.Context(), id, userFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	seed := game.BoardSeed(id)
	if v := r.URL.Query().Get("seed"); v != "" {
		if seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v))
			return
		}
	}

	c := diagram.New(m.Graph(), diagram.ModeGame, diagram.WithContext(r.Context()))
	if err := c.Shuffle(seed); err != nil {
		writeError(w, err)
		return
	}
	c.MeasureAll()
	writeJSON(w, http.StatusOK, boardResponse{
		SessionID: id,
		MindMapID: m.ID,
		Title:     m.Title,
		Seed:      seed,
		Nodes:     c.Nodes(),
	})
}

type completeSessionRequest struct {
	Edges              []graph.Edge `json:"edges"`
	TimeElapsedSeconds *int         `json:"time_elapsed_seconds"`
}

type completeSessionResponse struct {
	*game.Session
	Report score.Report `json:"report"`
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var req completeSessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Edges == nil || req.TimeElapsedSeconds == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "edges and time_elapsed_seconds are required"))
		return
	}

	sess, report, err := s.games.Complete(r.Context(), chi.URLParam(r, "id"), userFrom(r.Context()), req.Edges, *req.TimeElapsedSeconds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completeSessionResponse{Session: sess, Report: report})
}
