package radial

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/mindtower/pkg/graph"
)

const eps = 1e-9

func starGraph(n int) ([]graph.Node, []graph.Edge) {
	ns := []graph.Node{{ID: "root", Level: 0}}
	var es []graph.Edge
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("c%d", i)
		ns = append(ns, graph.Node{ID: id, Level: 1})
		es = append(es, graph.Edge{Source: "root", Target: id})
	}
	return ns, es
}

// threeTwo is a root with three children, the first of which has two children.
func threeTwo() ([]graph.Node, []graph.Edge) {
	ns := []graph.Node{
		{ID: "root", Level: 0},
		{ID: "a", Level: 1}, {ID: "b", Level: 1}, {ID: "c", Level: 1},
		{ID: "a1", Level: 2}, {ID: "a2", Level: 2},
	}
	es := []graph.Edge{
		{Source: "root", Target: "a"}, {Source: "root", Target: "b"}, {Source: "root", Target: "c"},
		{Source: "a", Target: "a1"}, {Source: "a", Target: "a2"},
	}
	return ns, es
}

func radiusOf(n graph.Node, c graph.Point) float64 { return n.Center().Dist(c) }

func angleOf(n graph.Node, c graph.Point) float64 {
	p := n.Center()
	a := math.Atan2(p.Y-c.Y, p.X-c.X) + math.Pi/2
	for a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a, 2*math.Pi)
}

func algorithms() []Algorithm { return []Algorithm{AlgorithmCluster, AlgorithmTree} }

func TestChildrenEquallySpaced(t *testing.T) {
	for _, alg := range algorithms() {
		for _, n := range []int{1, 2, 3, 5, 8, 13} {
			t.Run(fmt.Sprintf("%s/%d", alg, n), func(t *testing.T) {
				cfg := DefaultConfig()
				cfg.Algorithm = alg
				ns, es := starGraph(n)
				res := Compute(ns, es, cfg)
				if !res.Laid() || len(res.Placed) != n+1 {
					t.Fatalf("placed %d nodes, want %d", len(res.Placed), n+1)
				}

				r0 := radiusOf(ns[1], cfg.Center)
				step := 2 * math.Pi / float64(n)
				for i := 1; i <= n; i++ {
					if r := radiusOf(ns[i], cfg.Center); math.Abs(r-r0) > 1e-6 {
						t.Errorf("%s radius %.6f, want %.6f", ns[i].ID, r, r0)
					}
					want := (float64(i-1) + 0.5) * step
					if got := res.Angles[ns[i].ID]; math.Abs(got-want) > 1e-6 {
						t.Errorf("%s angle %.6f, want %.6f", ns[i].ID, got, want)
					}
					if got := angleOf(ns[i], cfg.Center); math.Abs(got-want) > 1e-6 {
						t.Errorf("%s placed at angle %.6f, want %.6f", ns[i].ID, got, want)
					}
				}
			})
		}
	}
}

func TestRootAtCentreAndRingsOrdered(t *testing.T) {
	for _, alg := range algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Algorithm = alg
			ns, es := threeTwo()
			res := Compute(ns, es, cfg)

			if r := radiusOf(ns[0], cfg.Center); r > eps {
				t.Errorf("root radius = %v, want 0", r)
			}
			maxDepth1 := 0.0
			for _, n := range ns[1:4] {
				maxDepth1 = math.Max(maxDepth1, radiusOf(n, cfg.Center))
			}
			for _, n := range ns[4:] {
				if r := radiusOf(n, cfg.Center); r < maxDepth1-eps {
					t.Errorf("depth-2 node %s at radius %.2f inside depth-1 ring %.2f", n.ID, r, maxDepth1)
				}
			}
			want := []float64{0, 220, 440}
			for i, r := range res.Radii {
				if math.Abs(r-want[i]) > eps {
					t.Errorf("Radii[%d] = %v, want %v", i, r, want[i])
				}
			}
			if res.Depths["a2"] != 2 || res.Depths["c"] != 1 {
				t.Errorf("Depths = %v", res.Depths)
			}
		})
	}
}

func TestSiblingOrderFollowsEdges(t *testing.T) {
	ns, es := threeTwo()
	res := Compute(ns, es, DefaultConfig())
	if !(res.Angles["a"] < res.Angles["b"] && res.Angles["b"] < res.Angles["c"]) {
		t.Errorf("angles not in edge order: %v", res.Angles)
	}
	if !(res.Angles["a1"] < res.Angles["a2"]) {
		t.Errorf("grandchildren not in edge order: %v", res.Angles)
	}
	// Cluster: a parent sits at the mean angle of its children.
	if mean := (res.Angles["a1"] + res.Angles["a2"]) / 2; math.Abs(res.Angles["a"]-mean) > eps {
		t.Errorf("a angle %.4f, want mean %.4f", res.Angles["a"], mean)
	}
}

func TestNoRootIsNoop(t *testing.T) {
	ns, es := threeTwo()
	for i := range ns {
		ns[i].Level++
	}
	ns[2].Position = &graph.Point{X: 7, Y: 9}
	res := Compute(ns, es, DefaultConfig())
	if res.Laid() || len(res.Placed) != 0 {
		t.Errorf("Compute without root placed %v", res.Placed)
	}
	if ns[0].Position != nil || *ns[2].Position != (graph.Point{X: 7, Y: 9}) {
		t.Error("positions changed without a root")
	}
}

func TestEmptyGraph(t *testing.T) {
	if res := Compute(nil, nil, DefaultConfig()); res.Laid() {
		t.Error("empty graph produced a layout")
	}
}

func TestRootAlone(t *testing.T) {
	cfg := DefaultConfig()
	ns := []graph.Node{{ID: "root", Width: 120, Height: 40}}
	Compute(ns, nil, cfg)
	if c := ns[0].Center(); c != cfg.Center {
		t.Errorf("root centre = %v, want %v", c, cfg.Center)
	}
	if ns[0].Position.X != 540 || ns[0].Position.Y != 480 {
		t.Errorf("root top-left = %v, want (540,480)", *ns[0].Position)
	}
}

func TestUnreachableKeepPosition(t *testing.T) {
	ns, es := threeTwo()
	ns = append(ns,
		graph.Node{ID: "orphan", Level: 1, Position: &graph.Point{X: 1, Y: 2}},
		graph.Node{ID: "root2", Level: 0, Position: &graph.Point{X: 3, Y: 4}},
	)
	res := Compute(ns, es, DefaultConfig())
	if len(res.Unreachable) != 2 {
		t.Fatalf("Unreachable = %v, want [orphan root2]", res.Unreachable)
	}
	if *ns[6].Position != (graph.Point{X: 1, Y: 2}) || *ns[7].Position != (graph.Point{X: 3, Y: 4}) {
		t.Error("unreachable nodes were moved")
	}
	if res.Root != "root" {
		t.Errorf("Root = %q, want first level-0 node", res.Root)
	}
}

func TestCyclesAndSharedChildren(t *testing.T) {
	ns := []graph.Node{{ID: "r"}, {ID: "a", Level: 1}, {ID: "b", Level: 1}, {ID: "x", Level: 2}}
	es := []graph.Edge{
		{Source: "r", Target: "a"}, {Source: "r", Target: "b"},
		{Source: "a", Target: "x"}, {Source: "b", Target: "x"},
		{Source: "x", Target: "r"},
	}
	res := Compute(ns, es, DefaultConfig())
	if len(res.Placed) != 4 {
		t.Fatalf("Placed = %v, want 4 nodes once each", res.Placed)
	}
	if res.Depths["x"] != 2 {
		t.Errorf("x depth = %d, want 2", res.Depths["x"])
	}
}

func TestLevelRadii(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name   string
		counts []int
		want   []float64
	}{
		{"RootOnly", []int{1}, []float64{0}},
		{"StepBound", []int{1, 3, 2}, []float64{0, 220, 440}},
		{"CircumferenceBound", []int{1, 20}, []float64{0, 20 * 230 / (2 * math.Pi)}},
		{"CircumferenceThenStep", []int{1, 20, 1}, []float64{0, 20 * 230 / (2 * math.Pi), 20*230/(2*math.Pi) + 220}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelRadii(tt.counts, cfg)
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("radius[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	cfg.SafetyFactor = 2
	if got := LevelRadii([]int{1, 20}, cfg); math.Abs(got[1]-2*20*230/(2*math.Pi)) > 1e-9 {
		t.Errorf("safety factor not applied: %v", got[1])
	}
}

func TestRingsFitTheirNodes(t *testing.T) {
	// With evenly spread leaves, the arc between neighbours is at least
	// NodeWidth + MinSpacing.
	cfg := DefaultConfig()
	ns, es := starGraph(24)
	res := Compute(ns, es, cfg)
	arc := res.Radii[1] * 2 * math.Pi / 24
	if arc < cfg.NodeWidth+cfg.MinSpacing-1e-9 {
		t.Errorf("arc between siblings %.2f < %.2f", arc, cfg.NodeWidth+cfg.MinSpacing)
	}
}

func TestTidyPacksSubtrees(t *testing.T) {
	// Unbalanced: a has four children, b and c none.
	ns := []graph.Node{{ID: "r"}, {ID: "a", Level: 1}, {ID: "b", Level: 1}, {ID: "c", Level: 1}}
	es := []graph.Edge{{Source: "r", Target: "a"}, {Source: "r", Target: "b"}, {Source: "r", Target: "c"}}
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("a%d", i)
		ns = append(ns, graph.Node{ID: id, Level: 2})
		es = append(es, graph.Edge{Source: "a", Target: id})
	}
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmTree
	res := Compute(ns, es, cfg)

	var prev float64 = -1
	for i := 0; i < 4; i++ {
		a := res.Angles[fmt.Sprintf("a%d", i)]
		if a <= prev {
			t.Fatalf("grandchild angles not increasing: %v", res.Angles)
		}
		prev = a
	}
	mid := (res.Angles["a0"] + res.Angles["a3"]) / 2
	if math.Abs(res.Angles["a"]-mid) > 1e-9 {
		t.Errorf("a angle %.4f not centred over children %.4f", res.Angles["a"], mid)
	}
	for id, a := range res.Angles {
		if a < 0 || a >= 2*math.Pi {
			t.Errorf("%s angle %v outside [0, 2π)", id, a)
		}
	}
}

func TestSeparation(t *testing.T) {
	p := &TreeNode{ID: "p"}
	q := &TreeNode{ID: "q"}
	a := &TreeNode{ID: "a", Parent: p, Depth: 2}
	b := &TreeNode{ID: "b", Parent: p, Depth: 2}
	c := &TreeNode{ID: "c", Parent: q, Depth: 2}
	if DefaultSeparation(a, b) != 1 || DefaultSeparation(a, c) != 2 {
		t.Error("DefaultSeparation: want 1 for siblings, 2 for cousins")
	}
	sep := DepthSeparation(0.5)
	if got := sep(a, c); got != 4 {
		t.Errorf("DepthSeparation(0.5)(cousins at depth 2) = %v, want 4", got)
	}
	cfg := DefaultConfig()
	cfg.DepthSpread = 0.5
	if got := cfg.separation()(a, b); got != 2 {
		t.Errorf("config separation = %v, want 2", got)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	for name, mod := range map[string]func(*Config){
		"Spacing":   func(c *Config) { c.MinSpacing = -1 },
		"Step":      func(c *Config) { c.MinLevelStep = -1 },
		"Safety":    func(c *Config) { c.SafetyFactor = 0.5 },
		"Algorithm": func(c *Config) { c.Algorithm = "spiral" },
	} {
		c := DefaultConfig()
		mod(&c)
		if c.Validate() == nil {
			t.Errorf("%s: Validate() = nil, want error", name)
		}
	}
}
