package diagram

import (
	"time"

	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/layout/force"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
	"github.com/matzehuels/mindtower/pkg/observability"
)

// ArrangeRadial stops any running force layout and places the nodes on
// rings around the root.
func (c *Controller) ArrangeRadial() radial.Result {
	c.StopForce()
	hooks := observability.Layout()
	start := time.Now()
	hooks.OnLayoutStart(c.ctx, graph.EngineRadial, len(c.nodes))
	res := radial.Compute(c.nodes, c.edges, c.radial)
	hooks.OnLayoutComplete(c.ctx, graph.EngineRadial, len(res.Placed), time.Since(start), nil)
	if !res.Laid() {
		c.logger.Warn("radial layout skipped: no level-0 node")
	}
	return res
}

// StartForce replaces any running simulation with a new one over the
// current nodes and edges. The host then calls Tick once per frame.
func (c *Controller) StartForce(cfg force.Config) {
	c.StopForce()
	c.sim = force.New(c.nodes, c.edges, cfg)
	c.startedForce()
}

// RunForce replaces any running simulation with one ticking on its own
// goroutine every interval until StopForce or cancellation of the
// controller context. Tick then copies the latest frame into the nodes
// instead of stepping. Drags reach the simulation through its handle and
// wake it after it has settled.
func (c *Controller) RunForce(cfg force.Config, interval time.Duration) {
	c.StopForce()
	c.handle = force.Start(c.ctx, force.New(c.nodes, c.edges, cfg), interval)
	c.startedForce()
}

func (c *Controller) startedForce() {
	c.forceStart = time.Now()
	c.settled = false
	observability.Layout().OnLayoutStart(c.ctx, graph.EngineForce, len(c.nodes))
}

// Tick advances the running simulation one step, or syncs the latest frame
// of a RunForce simulation, and writes the positions to the nodes. It
// returns false when no simulation is running or it has settled.
func (c *Controller) Tick() bool {
	var (
		active bool
		tick   int
		alpha  float64
	)
	switch {
	case c.handle != nil:
		f := c.handle.Last()
		force.ApplySnapshot(c.nodes, f.Positions)
		active, tick, alpha = f.State != force.Stopped, f.Tick, f.Alpha
	case c.sim != nil:
		active = c.sim.Tick()
		c.sim.Apply(c.nodes)
		tick, alpha = c.sim.Ticks(), c.sim.Alpha()
	default:
		return false
	}

	if active {
		c.settled = false
		observability.Layout().OnTick(c.ctx, tick, alpha)
		return true
	}
	if !c.settled {
		c.settled = true
		observability.Layout().OnLayoutComplete(c.ctx, graph.EngineForce, len(c.nodes), time.Since(c.forceStart), nil)
	}
	return false
}

// ForceActive reports whether a simulation is running.
func (c *Controller) ForceActive() bool {
	switch {
	case c.handle != nil:
		return c.handle.Last().State != force.Stopped
	case c.sim != nil:
		return c.sim.State() != force.Stopped
	}
	return false
}

// StopForce cancels the running simulation. Positions stay where they are.
func (c *Controller) StopForce() {
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
	if c.sim != nil {
		c.sim.Stop()
		c.sim = nil
	}
}

// =============================================================================
// Drag
// =============================================================================

// DragStart begins dragging node id. With a force layout attached the node
// is pinned and the simulation reheats.
func (c *Controller) DragStart(id string) error {
	if err := c.editable("drag nodes"); err != nil {
		return err
	}
	if c.node(id) == nil {
		return unknownNode(id)
	}
	switch {
	case c.handle != nil:
		c.handle.DragStart(id)
	case c.sim != nil:
		c.sim.DragStart(id)
	}
	return nil
}

// DragMove moves node id so its box's top-left corner is at (x, y).
func (c *Controller) DragMove(id string, x, y float64) error {
	if err := c.editable("drag nodes"); err != nil {
		return err
	}
	n := c.node(id)
	if n == nil {
		return unknownNode(id)
	}
	n.Position = &graph.Point{X: x, Y: y}
	ctr := n.Center()
	switch {
	case c.handle != nil:
		c.handle.DragMove(id, ctr.X, ctr.Y)
	case c.sim != nil:
		c.sim.DragMove(id, ctr.X, ctr.Y)
	}
	return nil
}

// DragEnd releases node id.
func (c *Controller) DragEnd(id string) error {
	if err := c.editable("drag nodes"); err != nil {
		return err
	}
	if c.node(id) == nil {
		return unknownNode(id)
	}
	switch {
	case c.handle != nil:
		c.handle.DragEnd(id)
	case c.sim != nil:
		c.sim.DragEnd(id)
	}
	return nil
}
