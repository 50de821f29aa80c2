package geometry

import (
	"fmt"
	"math"

	"github.com/matzehuels/mindtower/pkg/graph"
)

// DefaultCurvature controls how far control points bulge when the target
// lies behind the anchor side.
const DefaultCurvature = 0.25

// Bezier is a cubic curve from Start to End.
type Bezier struct {
	Start, C1, C2, End graph.Point
}

// Path returns the curve as an SVG path command.
func (b Bezier) Path() string {
	return fmt.Sprintf("M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f",
		b.Start.X, b.Start.Y, b.C1.X, b.C1.Y, b.C2.X, b.C2.Y, b.End.X, b.End.Y)
}

// Midpoint returns the point of the curve at t = 0.5.
func (b Bezier) Midpoint() graph.Point {
	return graph.Point{
		X: 0.125*b.Start.X + 0.375*b.C1.X + 0.375*b.C2.X + 0.125*b.End.X,
		Y: 0.125*b.Start.Y + 0.375*b.C1.Y + 0.375*b.C2.Y + 0.125*b.End.Y,
	}
}

// Curve builds the bezier for an anchored edge. Each control point leaves
// its anchor along the anchor side's normal.
func Curve(a Anchors, curvature float64) Bezier {
	return Bezier{
		Start: a.Source,
		C1:    control(a.SourceSide, a.Source, a.Target, curvature),
		C2:    control(a.TargetSide, a.Target, a.Source, curvature),
		End:   a.Target,
	}
}

func control(s Side, from, to graph.Point, c float64) graph.Point {
	switch s {
	case Left:
		return graph.Point{X: from.X - controlOffset(from.X-to.X, c), Y: from.Y}
	case Right:
		return graph.Point{X: from.X + controlOffset(to.X-from.X, c), Y: from.Y}
	case Bottom:
		return graph.Point{X: from.X, Y: from.Y + controlOffset(to.Y-from.Y, c)}
	default:
		return graph.Point{X: from.X, Y: from.Y - controlOffset(from.Y-to.Y, c)}
	}
}

// controlOffset is half the distance when the other end lies in front of
// the side, and a slowly growing bulge when it lies behind.
func controlOffset(d, c float64) float64 {
	if d >= 0 {
		return 0.5 * d
	}
	return c * 25 * math.Sqrt(-d)
}
