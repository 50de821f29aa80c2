package radial

import (
	"math"

	"github.com/matzehuels/mindtower/pkg/graph"
)

// Result describes a finished radial layout pass.
type Result struct {
	Root        string             `json:"root,omitempty"`
	Placed      []string           `json:"placed"`
	Unreachable []string           `json:"unreachable,omitempty"`
	Radii       []float64          `json:"radii"`
	Angles      map[string]float64 `json:"angles"`
	Depths      map[string]int     `json:"depths"`
}

// Laid reports whether the pass found a root and moved any node.
func (r Result) Laid() bool { return r.Root != "" }

// LevelRadii returns the ring radius of each depth given the node count per
// depth. Depth 0 has radius 0. Every deeper ring is at least large enough to
// seat its nodes side by side, count*(NodeWidth+MinSpacing)*SafetyFactor
// around the circumference, and at least MinLevelStep outside the previous
// ring.
func LevelRadii(counts []int, cfg Config) []float64 {
	radii := make([]float64, len(counts))
	safety := cfg.SafetyFactor
	if safety < 1 {
		safety = 1
	}
	for depth := 1; depth < len(counts); depth++ {
		fit := float64(counts[depth]) * (cfg.NodeWidth + cfg.MinSpacing) * safety / (2 * math.Pi)
		radii[depth] = math.Max(fit, radii[depth-1]+cfg.MinLevelStep)
	}
	return radii
}

// Polar converts an angle and radius around center to Cartesian
// coordinates. Angle 0 points up; angles grow clockwise on screen.
func Polar(center graph.Point, angle, radius float64) graph.Point {
	return graph.Point{
		X: center.X + radius*math.Cos(angle-math.Pi/2),
		Y: center.Y + radius*math.Sin(angle-math.Pi/2),
	}
}

// Compute lays out nodes in place. Each node of the tree is centred on its
// ring at its angle; nodes outside the tree keep their position. Without a
// level-0 node nothing moves and the zero Result is returned.
func Compute(nodes []graph.Node, edges []graph.Edge, cfg Config) Result {
	g := graph.Graph{Nodes: nodes, Edges: edges}
	root, ok := BuildTree(&g, graph.NewIndex(&g))
	if !ok {
		return Result{}
	}

	sep := cfg.separation()
	var angles map[string]float64
	if cfg.Algorithm == AlgorithmTree {
		angles = Tidy(root, sep)
	} else {
		angles = Cluster(root, sep)
	}

	res := Result{
		Root:   root.ID,
		Radii:  LevelRadii(LevelCounts(root), cfg),
		Angles: angles,
		Depths: make(map[string]int),
	}
	placed := make(map[string]bool)
	root.Walk(func(t *TreeNode) {
		r := res.Radii[t.Depth]
		nodes[t.Index].SetCenter(Polar(cfg.Center, angles[t.ID], r))
		res.Depths[t.ID] = t.Depth
		res.Placed = append(res.Placed, t.ID)
		placed[t.ID] = true
	})
	for _, n := range nodes {
		if !placed[n.ID] {
			res.Unreachable = append(res.Unreachable, n.ID)
		}
	}
	return res
}
