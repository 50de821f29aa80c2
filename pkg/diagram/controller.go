// Package diagram owns the live state of one mind map on screen.
//
// A [Controller] holds the node and edge slices, runs whichever layout
// engine is active, and turns user interaction (connect, disconnect, drag)
// into state changes. The host render loop calls [Controller.Tick] once per
// frame while a force layout is running and [Controller.Anchors] to get the
// edges it can draw.
//
// A Controller is not safe for concurrent use: it belongs to the single
// goroutine driving the host loop.
package diagram

import (
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/geometry"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/layout/force"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
	"github.com/matzehuels/mindtower/pkg/score"
	"github.com/matzehuels/mindtower/pkg/style"
)

// Mode controls which interactions a Controller accepts.
type Mode int

const (
	// ModeView is read-only: no connecting and no dragging.
	ModeView Mode = iota
	// ModeEdit allows every interaction.
	ModeEdit
	// ModeGame allows every interaction and shuffling.
	ModeGame
)

func (m Mode) String() string {
	switch m {
	case ModeView:
		return "view"
	case ModeEdit:
		return "edit"
	case ModeGame:
		return "game"
	}
	return "unknown"
}

// ParseMode parses "view", "edit" or "game".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "view", "":
		return ModeView, nil
	case "edit":
		return ModeEdit, nil
	case "game":
		return ModeGame, nil
	}
	return ModeView, errors.New(errors.ErrCodeInvalidInput, "unknown mode %q (want view, edit or game)", s)
}

// Board is the area shuffled nodes are scattered over.
var Board = graph.Rect{Width: 800, Height: 600}

// Controller owns the nodes and edges of one diagram.
type Controller struct {
	mode     Mode
	nodes    []graph.Node
	edges    []graph.Edge
	original []graph.Edge

	radial radial.Config

	// At most one of sim (host-ticked) and handle (own goroutine) is set.
	sim        *force.Simulation
	handle     *force.Handle
	forceStart time.Time
	settled    bool

	ctx    context.Context
	logger *log.Logger
	newID  func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithRadialConfig sets the parameters of ArrangeRadial.
func WithRadialConfig(cfg radial.Config) Option {
	return func(c *Controller) { c.radial = cfg }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// WithIDGenerator replaces the random edge ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// New returns a controller over a copy of g. The edges of g are remembered
// as the reference for Score.
func New(g graph.Graph, mode Mode, opts ...Option) *Controller {
	g = g.Clone()
	c := &Controller{
		mode:     mode,
		nodes:    g.Nodes,
		edges:    g.Edges,
		original: append([]graph.Edge(nil), g.Edges...),
		radial:   radial.DefaultConfig(),
		ctx:      context.Background(),
		logger:   log.New(io.Discard),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Nodes returns the live node slice. Callers must not keep it across calls
// that move nodes.
func (c *Controller) Nodes() []graph.Node { return c.nodes }

// Edges returns the live edge slice.
func (c *Controller) Edges() []graph.Edge { return c.edges }

// Graph returns a deep copy of the current state.
func (c *Controller) Graph() graph.Graph {
	return graph.Graph{Nodes: c.nodes, Edges: c.edges}.Clone()
}

// Style returns the appearance of node id.
func (c *Controller) Style(id string) style.Style {
	if n := c.node(id); n != nil {
		return style.ForLevel(n.Level)
	}
	return style.ForLevel(0)
}

func (c *Controller) node(id string) *graph.Node {
	for i := range c.nodes {
		if c.nodes[i].ID == id {
			return &c.nodes[i]
		}
	}
	return nil
}

func (c *Controller) editable(action string) error {
	if c.mode == ModeView {
		return errors.New(errors.ErrCodeReadOnly, "cannot %s in view mode", action)
	}
	return nil
}

// =============================================================================
// Measurement
// =============================================================================

// Measure records the rendered size of node id. It returns false for an
// unknown id or a non-positive size.
func (c *Controller) Measure(id string, width, height float64) bool {
	n := c.node(id)
	if n == nil || width <= 0 || height <= 0 {
		return false
	}
	n.Width, n.Height = width, height
	return true
}

// MeasureAll gives every unmeasured node the size estimated from its label
// and level style.
func (c *Controller) MeasureAll() {
	for i := range c.nodes {
		n := &c.nodes[i]
		if n.Width > 0 && n.Height > 0 {
			continue
		}
		n.Width, n.Height = style.ForLevel(n.Level).EstimateSize(n.DisplayLabel())
	}
}

// =============================================================================
// Connections
// =============================================================================

// Connect adds an edge from source to target and returns it. Self edges and
// edges duplicating an existing connection in either direction are rejected.
func (c *Controller) Connect(source, target string) (graph.Edge, error) {
	if err := c.editable("connect nodes"); err != nil {
		return graph.Edge{}, err
	}
	if c.node(source) == nil {
		return graph.Edge{}, errors.New(errors.ErrCodeInvalidInput, "unknown source node %q", source)
	}
	if c.node(target) == nil {
		return graph.Edge{}, errors.New(errors.ErrCodeInvalidInput, "unknown target node %q", target)
	}
	if source == target {
		return graph.Edge{}, errors.New(errors.ErrCodeInvalidInput, "cannot connect %q to itself", source)
	}
	key := score.Key(graph.Edge{Source: source, Target: target})
	for _, e := range c.edges {
		if score.Key(e) == key {
			return graph.Edge{}, errors.New(errors.ErrCodeInvalidInput, "%q and %q are already connected", source, target)
		}
	}
	e := graph.Edge{ID: c.newID(), Source: source, Target: target, Type: graph.EdgeTypeFloating}
	c.edges = append(c.edges, e)
	c.logger.Debug("connected", "edge", e.ID, "source", source, "target", target)
	return e, nil
}

// Disconnect removes the edge with the given ID.
func (c *Controller) Disconnect(edgeID string) error {
	if err := c.editable("remove connections"); err != nil {
		return err
	}
	for i, e := range c.edges {
		if e.ID == edgeID {
			c.edges = append(c.edges[:i], c.edges[i+1:]...)
			c.logger.Debug("disconnected", "edge", edgeID)
			return nil
		}
	}
	return errors.New(errors.ErrCodeNotFound, "edge %q not found", edgeID)
}

// =============================================================================
// Rendering
// =============================================================================

// RenderEdge is an edge that can be drawn this frame.
type RenderEdge struct {
	Edge    graph.Edge       `json:"edge"`
	Anchors geometry.Anchors `json:"anchors"`
	Path    string           `json:"path"`
}

// Anchors returns the drawable edges. Edges touching an unmeasured or
// unplaced node are skipped for this frame.
func (c *Controller) Anchors() []RenderEdge {
	out := make([]RenderEdge, 0, len(c.edges))
	for _, e := range c.edges {
		s, t := c.node(e.Source), c.node(e.Target)
		if s == nil || t == nil {
			continue
		}
		a, ok := geometry.EdgeAnchors(*s, *t)
		if !ok {
			continue
		}
		out = append(out, RenderEdge{
			Edge:    e,
			Anchors: a,
			Path:    geometry.Curve(a, geometry.DefaultCurvature).Path(),
		})
	}
	return out
}

// =============================================================================
// Game
// =============================================================================

// Shuffle scatters the nodes over the board and removes every edge, so the
// player can reconnect them. The original edges stay available to Score.
func (c *Controller) Shuffle(seed uint64) error {
	if c.mode != ModeGame {
		return errors.New(errors.ErrCodeInvalidInput, "shuffle requires game mode, controller is in %s mode", c.mode)
	}
	c.StopForce()
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	for i := range c.nodes {
		c.nodes[i].Position = &graph.Point{
			X: Board.X + rng.Float64()*Board.Width,
			Y: Board.Y + rng.Float64()*Board.Height,
		}
	}
	c.edges = nil
	c.logger.Debug("shuffled", "nodes", len(c.nodes), "seed", seed)
	return nil
}

// Submission returns a copy of the current edges.
func (c *Controller) Submission() []graph.Edge {
	return append([]graph.Edge(nil), c.edges...)
}

// Score compares the current edges with the edges the controller was
// created with.
func (c *Controller) Score() score.Report {
	return score.Compare(c.original, c.edges)
}
