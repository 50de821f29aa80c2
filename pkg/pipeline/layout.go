package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/layout/force"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
	"github.com/matzehuels/mindtower/pkg/observability"
	"github.com/matzehuels/mindtower/pkg/render"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout lays out a copy of g with the engine named in opts and
// returns it with the number of nodes the engine placed. Unmeasured nodes
// get estimated sizes first so collision radii and edge anchors are
// meaningful. opts must have been prepared with ValidateForLayout.
func GenerateLayout(ctx context.Context, g graph.Graph, opts Options) (l graph.Layout, placed int, err error) {
	work := render.Prepare(g)

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Engine, work.NodeCount())
	start := time.Now()
	defer func() {
		hooks.OnLayoutComplete(ctx, opts.Engine, placed, time.Since(start), err)
	}()

	if opts.IsForce() {
		return generateForceLayout(ctx, work, opts)
	}
	l, placed = generateRadialLayout(work, opts)
	return l, placed, nil
}

// =============================================================================
// Radial
// =============================================================================

func generateRadialLayout(g graph.Graph, opts Options) (graph.Layout, int) {
	res := radial.Compute(g.Nodes, g.Edges, opts.Radial)
	if !res.Laid() {
		opts.Logger.Warn("no root node (level 0); radial layout left nodes unmoved")
	} else if len(res.Unreachable) > 0 {
		opts.Logger.Warn("nodes unreachable from root keep their position", "count", len(res.Unreachable))
	}

	l := graph.NewLayout(graph.EngineRadial, g)
	l.Radii = res.Radii
	return l, len(res.Placed)
}

// =============================================================================
// Force
// =============================================================================

func generateForceLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, int, error) {
	sim := force.New(g.Nodes, g.Edges, opts.Force)
	ticks, err := force.Run(ctx, sim)
	if err != nil {
		return graph.Layout{}, 0, err
	}
	sim.Apply(g.Nodes)
	if sim.Alpha() >= opts.Force.AlphaMin {
		opts.Logger.Warn("force layout hit the tick limit before settling", "ticks", ticks, "alpha", sim.Alpha())
	}

	l := graph.NewLayout(graph.EngineForce, g)
	l.Ticks = ticks
	l.Alpha = sim.Alpha()
	return l, sim.Len(), nil
}
