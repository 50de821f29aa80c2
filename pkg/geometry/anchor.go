package geometry

import (
	"fmt"
	"math"

	"github.com/matzehuels/mindtower/pkg/graph"
)

// sideTolerance is how far (in pixels) a rounded point may sit from a box
// edge and still be classified as lying on it.
const sideTolerance = 1

// Side identifies one of the four sides of a node box.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

var sideNames = [...]string{"top", "right", "bottom", "left"}

func (s Side) String() string {
	if s < Top || s > Left {
		return "unknown"
	}
	return sideNames[s]
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name.
func (s *Side) UnmarshalText(text []byte) error {
	for i, name := range sideNames {
		if name == string(text) {
			*s = Side(i)
			return nil
		}
	}
	return fmt.Errorf("geometry: unknown side %q", text)
}

// Normal returns the unit vector pointing out of the box through side s.
// Screen coordinates: y grows downward, so Top points to negative y.
func (s Side) Normal() graph.Point {
	switch s {
	case Right:
		return graph.Point{X: 1}
	case Bottom:
		return graph.Point{Y: 1}
	case Left:
		return graph.Point{X: -1}
	default:
		return graph.Point{Y: -1}
	}
}

// Anchors is where an edge attaches to its two endpoint nodes.
type Anchors struct {
	Source     graph.Point `json:"source"`
	Target     graph.Point `json:"target"`
	SourceSide Side        `json:"source_side"`
	TargetSide Side        `json:"target_side"`
}

// EdgeAnchors computes the attachment points of an edge from source to
// target. It returns false if either node is unmeasured or unpositioned.
func EdgeAnchors(source, target graph.Node) (Anchors, bool) {
	if !source.Measured() || !target.Measured() {
		return Anchors{}, false
	}
	sp := Intersect(source.Box(), target.Center())
	tp := Intersect(target.Box(), source.Center())
	return Anchors{
		Source:     sp,
		Target:     tp,
		SourceSide: SideOf(source.Box(), sp),
		TargetSide: SideOf(target.Box(), tp),
	}, true
}

// Intersect returns the point where the segment from the centre of box
// toward p crosses the box boundary. If p coincides with the centre the
// direction is undefined and the top-centre of the box is returned.
func Intersect(box graph.Rect, p graph.Point) graph.Point {
	w, h := box.Width/2, box.Height/2
	c := box.Center()

	d := p.Sub(c)
	xx1 := d.X/(2*w) - d.Y/(2*h)
	yy1 := d.X/(2*w) + d.Y/(2*h)
	l1 := math.Abs(xx1) + math.Abs(yy1)
	if l1 == 0 || math.IsNaN(l1) || math.IsInf(l1, 0) {
		return graph.Point{X: c.X, Y: box.Y}
	}
	a := 1 / l1
	xx3 := a * xx1
	yy3 := a * yy1
	return graph.Point{
		X: w*(xx3+yy3) + c.X,
		Y: h*(-xx3+yy3) + c.Y,
	}
}

// SideOf classifies which side of box the boundary point p lies on.
// Coordinates are rounded to whole pixels and compared with a one pixel
// tolerance, checking left, right, top, bottom in that order. A point that
// matches none of them is reported as Top.
func SideOf(box graph.Rect, p graph.Point) Side {
	nx, ny := math.Round(box.X), math.Round(box.Y)
	px, py := math.Round(p.X), math.Round(p.Y)

	switch {
	case px <= nx+sideTolerance:
		return Left
	case px >= nx+box.Width-sideTolerance:
		return Right
	case py <= ny+sideTolerance:
		return Top
	case py >= ny+box.Height-sideTolerance:
		return Bottom
	default:
		return Top
	}
}
