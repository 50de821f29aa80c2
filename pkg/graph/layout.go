package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/mindtower/pkg/errors"
)

// Layout engine identifiers.
const (
	EngineRadial = "radial"
	EngineForce  = "force"
)

// =============================================================================
// Layout - Serialized Layout Result
// =============================================================================

// Layout is the serialization format of a finished layout run.
//
// Nodes carry their computed positions; Width and Height give the bounding
// frame of the diagram, including node boxes. Radial runs also record the
// level radii, force runs the number of ticks executed.
type Layout struct {
	Engine string  `json:"engine" bson:"engine"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges,omitempty" bson:"edges,omitempty"`

	// Radial-specific
	Radii []float64 `json:"radii,omitempty" bson:"radii,omitempty"`

	// Force-specific
	Ticks int     `json:"ticks,omitempty" bson:"ticks,omitempty"`
	Alpha float64 `json:"alpha,omitempty" bson:"alpha,omitempty"`
}

// Graph returns the positioned graph contained in the layout.
func (l *Layout) Graph() Graph { return Graph{Nodes: l.Nodes, Edges: l.Edges} }

// NewLayout wraps a positioned graph in a Layout and computes its frame.
func NewLayout(engine string, g Graph) Layout {
	b := Bounds(&g)
	return Layout{
		Engine: engine,
		Width:  b.Right(),
		Height: b.Bottom(),
		Nodes:  g.Nodes,
		Edges:  g.Edges,
	}
}

// Bounds returns the smallest box covering every positioned node, anchored
// at the origin. Unpositioned nodes are ignored.
func Bounds(g *Graph) Rect {
	var r Rect
	for _, n := range g.Nodes {
		if n.Position == nil {
			continue
		}
		if right := n.Position.X + n.Width; right > r.Width {
			r.Width = right
		}
		if bottom := n.Position.Y + n.Height; bottom > r.Height {
			r.Height = bottom
		}
	}
	return r
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// The engine field is required.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	switch l.Engine {
	case EngineRadial, EngineForce:
	case "":
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout must name its engine")
	default:
		return Layout{}, errors.New(errors.ErrCodeInvalidEngine, "unknown layout engine %q", l.Engine)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
