package graph

import (
	"math"
	"time"
)

// EdgeTypeFloating is the default edge type: an edge whose anchors float
// around the node boxes instead of being fixed to handles.
const EdgeTypeFloating = "floating"

// RootLevel is the hierarchy level of the root node.
const RootLevel = 0

// =============================================================================
// Geometry Primitives
// =============================================================================

// Point is a 2D coordinate in diagram units (pixels).
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Rect is an axis-aligned box given by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the centre point of the box.
func (r Rect) Center() Point { return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r or on its border, within tol.
func (r Rect) Contains(p Point, tol float64) bool {
	return p.X >= r.X-tol && p.X <= r.Right()+tol &&
		p.Y >= r.Y-tol && p.Y <= r.Bottom()+tol
}

// OnBorder reports whether p lies on the border of r, within tol.
func (r Rect) OnBorder(p Point, tol float64) bool {
	if !r.Contains(p, tol) {
		return false
	}
	return math.Abs(p.X-r.X) <= tol || math.Abs(p.X-r.Right()) <= tol ||
		math.Abs(p.Y-r.Y) <= tol || math.Abs(p.Y-r.Bottom()) <= tol
}

// =============================================================================
// Node
// =============================================================================

// Node is a labeled vertex of a mind map.
//
// Position is nil until a layout engine or the user places the node.
// Width and Height are zero until the rendering layer has measured the node;
// an unmeasured node cannot anchor edges. Radius is the collision radius used
// by the force layout; zero means "derive from the measured size".
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label" bson:"label"`
	Level    int     `json:"level" bson:"level"`
	Content  *string `json:"content,omitempty" bson:"content,omitempty"`
	Position *Point  `json:"position,omitempty" bson:"position,omitempty"`
	Width    float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height   float64 `json:"height,omitempty" bson:"height,omitempty"`
	Radius   float64 `json:"radius,omitempty" bson:"radius,omitempty"`
}

// IsRoot reports whether the node sits at hierarchy level 0.
func (n *Node) IsRoot() bool { return n.Level == RootLevel }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Measured reports whether the node has a position and a non-empty box.
func (n *Node) Measured() bool {
	return n.Position != nil && n.Width > 0 && n.Height > 0
}

// Box returns the node's bounding box. It is only meaningful when Measured.
func (n *Node) Box() Rect {
	var r Rect
	if n.Position != nil {
		r.X, r.Y = n.Position.X, n.Position.Y
	}
	r.Width, r.Height = n.Width, n.Height
	return r
}

// Center returns the centre of the node box. Unmeasured nodes are treated as
// points, so the centre equals the position.
func (n *Node) Center() Point {
	if n.Position == nil {
		return Point{}
	}
	return Point{X: n.Position.X + n.Width/2, Y: n.Position.Y + n.Height/2}
}

// SetCenter moves the node so that its box is centred on c.
func (n *Node) SetCenter(c Point) {
	n.Position = &Point{X: c.X - n.Width/2, Y: c.Y - n.Height/2}
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two node IDs. Direction is a
// convention (source → target): the scorer ignores it.
type Edge struct {
	ID     string `json:"id,omitempty" bson:"id,omitempty"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Type   string `json:"type,omitempty" bson:"type,omitempty"`
}

// =============================================================================
// Graph & MindMap
// =============================================================================

// Graph is an ordered sequence of nodes and a sequence of edges.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node returns a pointer to the node with the given ID, or nil.
// The pointer aliases the graph's slice, so callers can update it in place.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Clone returns a deep copy of the graph. Positions and content are copied,
// so mutating the clone never affects the original.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		if n.Position != nil {
			p := *n.Position
			n.Position = &p
		}
		if n.Content != nil {
			c := *n.Content
			n.Content = &c
		}
		out.Nodes[i] = n
	}
	copy(out.Edges, g.Edges)
	return out
}

// MindMap is a titled diagram document as supplied by external collaborators.
type MindMap struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	PDFFilename string    `json:"pdf_filename,omitempty" bson:"pdf_filename,omitempty"`
	Nodes       []Node    `json:"nodes" bson:"nodes"`
	Edges       []Edge    `json:"edges" bson:"edges"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Graph returns the diagram's node-link content.
func (m *MindMap) Graph() Graph {
	return Graph{Nodes: m.Nodes, Edges: m.Edges}
}
