package force

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/mindtower/pkg/graph"
)

// State is the lifecycle phase of a Simulation.
type State int

const (
	// Initializing: starting coordinates assigned, no tick run yet.
	Initializing State = iota
	// Running: ticking with the temperature held up by a drag.
	Running
	// Settling: ticking while the temperature decays toward zero.
	Settling
	// Stopped: converged or cancelled.
	Stopped
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Settling:
		return "settling"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// particle is the per-run projection of a graph node.
type particle struct {
	id     string
	x, y   float64
	vx, vy float64
	r      float64
	pinned bool
	fx, fy float64
}

type link struct {
	source, target int
	strength       float64
	bias           float64
}

// Simulation is a force-directed layout over a fixed set of nodes and edges.
type Simulation struct {
	cfg   Config
	nodes []particle
	links []link
	index map[string]int
	rng   *rand.Rand

	alpha       float64
	alphaTarget float64
	state       State
	ticks       int
	pinned      int
}

// New builds a simulation from nodes and edges. Nodes keep their prior
// position when they have one; the rest start at a random point of the
// initial area. Edges naming unknown nodes are ignored.
func New(nodes []graph.Node, edges []graph.Edge, cfg Config) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		nodes: make([]particle, 0, len(nodes)),
		index: make(map[string]int, len(nodes)),
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef)),
		alpha: cfg.Alpha,
	}

	for _, n := range nodes {
		if _, dup := s.index[n.ID]; dup {
			continue
		}
		p := particle{id: n.ID, r: s.radius(n)}
		if n.Position != nil {
			c := n.Center()
			p.x, p.y = c.X, c.Y
		} else {
			p.x = s.rng.Float64() * cfg.InitialWidth
			p.y = s.rng.Float64() * cfg.InitialHeight
		}
		s.index[n.ID] = len(s.nodes)
		s.nodes = append(s.nodes, p)
	}
	s.links = s.buildLinks(edges)

	if len(s.nodes) == 0 {
		s.state = Stopped
	}
	return s
}

// radius picks the collision radius of n: its own radius, else the half
// diagonal of its measured box plus padding, else the configured default.
func (s *Simulation) radius(n graph.Node) float64 {
	switch {
	case n.Radius > 0:
		return n.Radius
	case n.Width > 0 && n.Height > 0:
		return math.Hypot(n.Width, n.Height)/2 + s.cfg.RadiusPadding
	default:
		return s.cfg.DefaultRadius
	}
}

func (s *Simulation) buildLinks(edges []graph.Edge) []link {
	count := make([]int, len(s.nodes))
	links := make([]link, 0, len(edges))
	for _, e := range edges {
		si, ok1 := s.index[e.Source]
		ti, ok2 := s.index[e.Target]
		if !ok1 || !ok2 || si == ti {
			continue
		}
		count[si]++
		count[ti]++
		links = append(links, link{source: si, target: ti})
	}
	for i := range links {
		l := &links[i]
		cs, ct := float64(count[l.source]), float64(count[l.target])
		l.bias = cs / (cs + ct)
		if s.cfg.LinkStrength > 0 {
			l.strength = s.cfg.LinkStrength
		} else {
			l.strength = 1 / math.Min(cs, ct)
		}
	}
	return links
}

// Tick advances the simulation by one step and reports whether it is still
// active afterwards. A stopped simulation does nothing and returns false.
func (s *Simulation) Tick() bool {
	if s.state == Stopped {
		return false
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyCenter()
	s.applyCollide()

	damp := 1 - s.cfg.VelocityDecay
	for i := range s.nodes {
		p := &s.nodes[i]
		if p.pinned {
			p.x, p.y = p.fx, p.fy
			p.vx, p.vy = 0, 0
			continue
		}
		p.vx *= damp
		p.vy *= damp
		p.x += p.vx
		p.y += p.vy
	}
	s.ticks++

	switch {
	case s.alpha < s.cfg.AlphaMin && s.alphaTarget < s.cfg.AlphaMin:
		s.state = Stopped
	case s.alphaTarget >= s.cfg.AlphaMin:
		s.state = Running
	default:
		s.state = Settling
	}
	return s.state != Stopped
}

// Stop cancels the simulation. Positions are left as they are.
func (s *Simulation) Stop() { s.state = Stopped }

// State reports the lifecycle phase.
func (s *Simulation) State() State { return s.state }

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Ticks returns the number of ticks run so far.
func (s *Simulation) Ticks() int { return s.ticks }

// Len returns the number of simulated nodes.
func (s *Simulation) Len() int { return len(s.nodes) }

// =============================================================================
// Drag Interaction
// =============================================================================

// DragStart pins node id at its current position and raises the temperature
// so the rest of the layout reacts. A stopped simulation restarts.
// It returns false if id is unknown.
func (s *Simulation) DragStart(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	p := &s.nodes[i]
	if !p.pinned {
		p.pinned = true
		s.pinned++
	}
	p.fx, p.fy = p.x, p.y
	s.alphaTarget = s.cfg.DragAlphaTarget
	s.boost()
	return true
}

// DragMove moves the pinned node id to the centre coordinate (x, y).
// It returns false if id is unknown or not being dragged.
func (s *Simulation) DragMove(id string, x, y float64) bool {
	i, ok := s.index[id]
	if !ok || !s.nodes[i].pinned {
		return false
	}
	p := &s.nodes[i]
	p.fx, p.fy = x, y
	p.x, p.y = x, y
	return true
}

// DragEnd releases node id. Once no node is pinned the temperature target
// drops back to zero and the layout settles around the moved node.
func (s *Simulation) DragEnd(id string) bool {
	i, ok := s.index[id]
	if !ok || !s.nodes[i].pinned {
		return false
	}
	s.nodes[i].pinned = false
	s.pinned--
	if s.pinned == 0 {
		s.alphaTarget = 0
	}
	s.boost()
	return true
}

// Pinned reports whether node id is currently pinned.
func (s *Simulation) Pinned(id string) bool {
	i, ok := s.index[id]
	return ok && s.nodes[i].pinned
}

func (s *Simulation) boost() {
	if s.alpha < s.cfg.DragAlphaTarget {
		s.alpha = s.cfg.DragAlphaTarget
	}
	if s.state == Stopped || s.state == Initializing {
		s.state = Running
	}
}

// =============================================================================
// Output
// =============================================================================

// Position returns the centre of node id.
func (s *Simulation) Position(id string) (graph.Point, bool) {
	i, ok := s.index[id]
	if !ok {
		return graph.Point{}, false
	}
	return graph.Point{X: s.nodes[i].x, Y: s.nodes[i].y}, true
}

// Snapshot returns the current centre of every node keyed by id.
func (s *Simulation) Snapshot() map[string]graph.Point {
	out := make(map[string]graph.Point, len(s.nodes))
	for _, p := range s.nodes {
		out[p.id] = graph.Point{X: p.x, Y: p.y}
	}
	return out
}

// Radius returns the collision radius of node id.
func (s *Simulation) Radius(id string) float64 {
	if i, ok := s.index[id]; ok {
		return s.nodes[i].r
	}
	return 0
}

// Apply writes the simulated positions back into nodes, converting centres
// to the top-left box convention. Nodes unknown to the simulation are left
// untouched.
func (s *Simulation) Apply(nodes []graph.Node) {
	ApplySnapshot(nodes, s.Snapshot())
}

// ApplySnapshot writes centre positions from snap into nodes.
func ApplySnapshot(nodes []graph.Node, snap map[string]graph.Point) {
	for i := range nodes {
		if c, ok := snap[nodes[i].ID]; ok {
			nodes[i].SetCenter(c)
		}
	}
}
