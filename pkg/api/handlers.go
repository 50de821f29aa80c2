package api

import (
	"net/http"

	"github.com/matzehuels/mindtower/pkg/buildinfo"
	"github.com/matzehuels/mindtower/pkg/diagram"
	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/pipeline"
	"github.com/matzehuels/mindtower/pkg/score"
	"github.com/matzehuels/mindtower/pkg/style"
)

// graphRequest is a diagram plus pipeline options.
type graphRequest struct {
	graph.Graph
	Options pipeline.Options `json:"options"`
}

// load decodes and validates a graph request. Options start from the
// server configuration.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (graph.Graph, pipeline.Options, error) {
	var req graphRequest
	if err := decode(w, r, &req); err != nil {
		return graph.Graph{}, pipeline.Options{}, err
	}
	req.Graph.Normalize()
	if err := req.Graph.Validate(); err != nil {
		return graph.Graph{}, pipeline.Options{}, err
	}
	req.Options.ApplyConfig(s.cfg)
	req.Options.TickLimit = s.cfg.Server.MaxTicks
	return req.Graph, req.Options, nil
}

type health struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, health{Status: "ok", Info: buildinfo.Get()})
}

type styleEntry struct {
	Level int `json:"level"`
	style.Style
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	out := make([]styleEntry, len(style.Palette))
	for level := range out {
		out[level] = styleEntry{Level: level, Style: style.ForLevel(level)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.load(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := s.runner.Layout(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	g, opts, err := s.load(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

type anchorsRequest struct {
	graph.Graph
	// Estimate fills in the size of unmeasured nodes from their label.
	Estimate bool `json:"estimate"`
}

func (s *Server) handleAnchors(w http.ResponseWriter, r *http.Request) {
	var req anchorsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Graph.Normalize()
	if err := req.Graph.Validate(); err != nil {
		writeError(w, err)
		return
	}
	c := diagram.New(req.Graph, diagram.ModeView, diagram.WithContext(r.Context()))
	if req.Estimate {
		c.MeasureAll()
	}
	writeJSON(w, http.StatusOK, c.Anchors())
}

type scoreRequest struct {
	Original  []graph.Edge `json:"original"`
	Submitted []graph.Edge `json:"submitted"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Original == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "original edges are required"))
		return
	}
	writeJSON(w, http.StatusOK, score.Compare(req.Original, req.Submitted))
}
