// Package api exposes mindtower over HTTP.
//
// The API is stateless apart from its stores: layout, render, anchor and
// score requests carry the whole diagram; mind maps and game sessions are
// read from the configured repository and session store.
//
// # Routes
//
//	GET  /healthz                     status and build version
//	GET  /styles                      level palette
//	POST /layout                      positioned graph (radial or force)
//	POST /render?format=svg           image of a graph
//	POST /anchors                     drawable edges of a positioned graph
//	POST /score                       compare two edge sets
//
//	POST /mindmaps                    store a mind map        (user required)
//	GET  /mindmaps                    list own mind maps      (user required)
//	GET  /mindmaps/{id}               fetch one               (user required)
//	GET  /mindmaps/{id}/layout        lay out a stored map    (user required)
//
//	POST /game/sessions               start a game            (user required)
//	GET  /game/sessions               list games              (user required)
//	GET  /game/sessions/{id}          fetch a game            (user required)
//	GET  /game/sessions/{id}/board    shuffled board          (user required)
//	PUT  /game/sessions/{id}          submit and score        (user required)
//
// The user is identified by a request header (X-User-ID by default); the
// API is meant to sit behind an authenticating proxy that sets it.
// Errors are answered as {"error": {"code": ..., "message": ...}} with the
// status given by errors.HTTPStatus.
package api

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindtower/pkg/config"
	"github.com/matzehuels/mindtower/pkg/game"
	"github.com/matzehuels/mindtower/pkg/pipeline"
	"github.com/matzehuels/mindtower/pkg/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 10 << 20

// Server serves the HTTP API.
type Server struct {
	cfg    config.Config
	maps   store.Repository
	games  *game.Service
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a Server. A nil logger discards log output.
func New(cfg config.Config, maps store.Repository, games *game.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:    cfg,
		maps:   maps,
		games:  games,
		runner: pipeline.NewRunner(logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/styles", s.handleStyles)
	r.Post("/layout", s.handleLayout)
	r.Post("/render", s.handleRender)
	r.Post("/anchors", s.handleAnchors)
	r.Post("/score", s.handleScore)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Route("/mindmaps", func(r chi.Router) {
			r.Post("/", s.handleCreateMindMap)
			r.Get("/", s.handleListMindMaps)
			r.Get("/{id}", s.handleGetMindMap)
			r.Get("/{id}/layout", s.handleMindMapLayout)
		})

		r.Route("/game/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/", s.handleListSessions)
			r.Get("/{id}", s.handleGetSession)
			r.Get("/{id}/board", s.handleBoard)
			r.Put("/{id}", s.handleCompleteSession)
		})
	})
	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
