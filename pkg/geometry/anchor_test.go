package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/mindtower/pkg/graph"
)

func box(id string, x, y, w, h float64) graph.Node {
	return graph.Node{ID: id, Position: &graph.Point{X: x, Y: y}, Width: w, Height: h}
}

func TestEdgeAnchorsSides(t *testing.T) {
	a := box("a", 0, 0, 100, 40)
	tests := []struct {
		name       string
		b          graph.Node
		wantSource Side
		wantTarget Side
	}{
		{"Right", box("b", 300, 0, 100, 40), Right, Left},
		{"Left", box("b", -300, 0, 100, 40), Left, Right},
		{"Below", box("b", 0, 300, 100, 40), Bottom, Top},
		{"Above", box("b", 0, -300, 100, 40), Top, Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EdgeAnchors(a, tt.b)
			if !ok {
				t.Fatal("EdgeAnchors() = false, want true")
			}
			if got.SourceSide != tt.wantSource {
				t.Errorf("SourceSide = %v, want %v", got.SourceSide, tt.wantSource)
			}
			if got.TargetSide != tt.wantTarget {
				t.Errorf("TargetSide = %v, want %v", got.TargetSide, tt.wantTarget)
			}
		})
	}
}

func TestEdgeAnchorsHorizontal(t *testing.T) {
	a := box("a", 0, 0, 100, 40)
	b := box("b", 300, 0, 100, 40)
	got, _ := EdgeAnchors(a, b)
	if got.Source != (graph.Point{X: 100, Y: 20}) {
		t.Errorf("Source = %v, want (100,20)", got.Source)
	}
	if got.Target != (graph.Point{X: 300, Y: 20}) {
		t.Errorf("Target = %v, want (300,20)", got.Target)
	}
}

func TestEdgeAnchorsCorner(t *testing.T) {
	// Centres on the box diagonal: the line exits through the corner.
	a := box("a", 0, 0, 100, 40)
	b := box("b", 200, 80, 100, 40)
	got, _ := EdgeAnchors(a, b)
	if math.Abs(got.Source.X-100) > 1e-9 || math.Abs(got.Source.Y-40) > 1e-9 {
		t.Errorf("Source = %v, want corner (100,40)", got.Source)
	}
}

func TestEdgeAnchorsOnBoundary(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7^0xdeadbeef))
	const tol = 1e-6
	for i := 0; i < 500; i++ {
		a := box("a", rng.Float64()*1000-500, rng.Float64()*1000-500, 20+rng.Float64()*200, 20+rng.Float64()*100)
		b := box("b", rng.Float64()*1000-500, rng.Float64()*1000-500, 20+rng.Float64()*200, 20+rng.Float64()*100)
		got, ok := EdgeAnchors(a, b)
		if !ok {
			t.Fatalf("case %d: EdgeAnchors() = false", i)
		}
		if !a.Box().OnBorder(got.Source, tol) {
			t.Fatalf("case %d: source anchor %v not on %+v", i, got.Source, a.Box())
		}
		if !b.Box().OnBorder(got.Target, tol) {
			t.Fatalf("case %d: target anchor %v not on %+v", i, got.Target, b.Box())
		}
	}
}

func TestEdgeAnchorsUnmeasured(t *testing.T) {
	measured := box("a", 0, 0, 100, 40)
	tests := []struct {
		name string
		n    graph.Node
	}{
		{"NoPosition", graph.Node{ID: "b", Width: 100, Height: 40}},
		{"ZeroWidth", box("b", 200, 0, 0, 40)},
		{"ZeroHeight", box("b", 200, 0, 100, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := EdgeAnchors(measured, tt.n); ok {
				t.Error("EdgeAnchors(measured, unmeasured) = true")
			}
			if _, ok := EdgeAnchors(tt.n, measured); ok {
				t.Error("EdgeAnchors(unmeasured, measured) = true")
			}
		})
	}
}

func TestEdgeAnchorsCoincident(t *testing.T) {
	a := box("a", 0, 0, 100, 40)
	b := box("b", 0, 0, 100, 40)
	got, ok := EdgeAnchors(a, b)
	if !ok {
		t.Fatal("EdgeAnchors() = false")
	}
	want := graph.Point{X: 50, Y: 0}
	if got.Source != want || got.Target != want {
		t.Errorf("anchors = %v, %v; want top-centre %v", got.Source, got.Target, want)
	}
	if got.SourceSide != Top || got.TargetSide != Top {
		t.Errorf("sides = %v, %v; want top", got.SourceSide, got.TargetSide)
	}
}

func TestEdgeAnchorsDoesNotMutate(t *testing.T) {
	a := box("a", 0, 0, 100, 40)
	b := box("b", 300, 100, 80, 40)
	EdgeAnchors(a, b)
	if a.Position.X != 0 || b.Position.X != 300 {
		t.Error("EdgeAnchors mutated node positions")
	}
}

func TestSideOf(t *testing.T) {
	r := graph.Rect{X: 10, Y: 10, Width: 100, Height: 50}
	tests := []struct {
		p    graph.Point
		want Side
	}{
		{graph.Point{X: 10, Y: 30}, Left},
		{graph.Point{X: 10.4, Y: 30}, Left},
		{graph.Point{X: 110, Y: 30}, Right},
		{graph.Point{X: 50, Y: 10}, Top},
		{graph.Point{X: 50, Y: 60}, Bottom},
		{graph.Point{X: 50, Y: 35}, Top},
	}
	for _, tt := range tests {
		if got := SideOf(r, tt.p); got != tt.want {
			t.Errorf("SideOf(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestSideString(t *testing.T) {
	for s, want := range map[Side]string{Top: "top", Right: "right", Bottom: "bottom", Left: "left", Side(9): "unknown"} {
		if s.String() != want {
			t.Errorf("Side(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
	if n := Left.Normal(); n.X != -1 || n.Y != 0 {
		t.Errorf("Left.Normal() = %v", n)
	}
}

func TestCurve(t *testing.T) {
	a := Anchors{
		Source:     graph.Point{X: 100, Y: 20},
		Target:     graph.Point{X: 300, Y: 20},
		SourceSide: Right,
		TargetSide: Left,
	}
	c := Curve(a, DefaultCurvature)
	if c.C1 != (graph.Point{X: 200, Y: 20}) || c.C2 != (graph.Point{X: 200, Y: 20}) {
		t.Errorf("control points = %v, %v; want (200,20) twice", c.C1, c.C2)
	}
	if m := c.Midpoint(); m.X != 200 || m.Y != 20 {
		t.Errorf("Midpoint() = %v, want (200,20)", m)
	}
	want := "M100.00,20.00 C200.00,20.00 200.00,20.00 300.00,20.00"
	if c.Path() != want {
		t.Errorf("Path() = %q, want %q", c.Path(), want)
	}

	// Target behind the source side bulges outward instead of crossing back.
	back := Curve(Anchors{Source: graph.Point{X: 100}, Target: graph.Point{X: 0}, SourceSide: Right, TargetSide: Left}, DefaultCurvature)
	if back.C1.X <= 100 {
		t.Errorf("C1.X = %v, want > 100", back.C1.X)
	}
}

func TestSideText(t *testing.T) {
	for _, s := range []Side{Top, Right, Bottom, Left} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", s, err)
		}
		var back Side
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, back, err, s)
		}
	}

	var s Side
	if err := s.UnmarshalText([]byte("middle")); err == nil {
		t.Error("expected error for unknown side")
	}
}
